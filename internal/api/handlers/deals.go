package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/sportscard-tracker/internal/database"
	"github.com/codyseavey/sportscard-tracker/internal/models"
	"github.com/codyseavey/sportscard-tracker/internal/services"
)

type DealHandler struct {
	dealFinder *services.DealFinder
	calc       *services.Calculator
}

func NewDealHandler(dealFinder *services.DealFinder, calc *services.Calculator) *DealHandler {
	return &DealHandler{
		dealFinder: dealFinder,
		calc:       calc,
	}
}

// FindDeals runs a bulk deal scan. Optional query parameters: genre,
// min_roi, min_price, max_price (cents).
func (h *DealHandler) FindDeals(c *gin.Context) {
	opts := services.FindDealsOptions{
		Genre: c.Query("genre"),
	}

	if minROIStr := c.Query("min_roi"); minROIStr != "" {
		minROI, err := strconv.ParseFloat(minROIStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_roi"})
			return
		}
		opts.MinROI = &minROI
	}

	minPriceStr, maxPriceStr := c.Query("min_price"), c.Query("max_price")
	if minPriceStr != "" || maxPriceStr != "" {
		minPrice, err1 := strconv.ParseInt(minPriceStr, 10, 64)
		maxPrice, err2 := strconv.ParseInt(maxPriceStr, 10, 64)
		if err1 != nil || err2 != nil || minPrice > maxPrice {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price range"})
			return
		}
		opts.PriceRange = &services.PriceRange{Min: minPrice, Max: maxPrice}
	}

	deals, err := h.dealFinder.FindDeals(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deals": deals,
		"count": len(deals),
	})
}

// AnalyzeDeal evaluates one asking price against market value.
func (h *DealHandler) AnalyzeDeal(c *gin.Context) {
	var req models.AnalyzeDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.MarketValue < 0 || req.AskingPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prices must be non-negative"})
		return
	}

	analysis := h.dealFinder.AnalyzeDeal(req.MarketValue, req.AskingPrice, req.ShippingCost)
	c.JSON(http.StatusOK, analysis)
}

// CompareConditions projects profit per price bucket for a card's latest
// snapshot.
func (h *DealHandler) CompareConditions(c *gin.Context) {
	cardID, ok := pathCardID(c)
	if !ok {
		return
	}

	results, err := h.dealFinder.CompareConditions(cardID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no price history for card"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"card_id":    cardID,
		"conditions": results,
	})
}

// CalculateProfit runs an ad-hoc projected profit calculation.
func (h *DealHandler) CalculateProfit(c *gin.Context) {
	var req models.CalculateProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PurchasePrice < 0 || req.MarketValue < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prices must be non-negative"})
		return
	}

	var breakdown models.ProfitBreakdown
	if req.ShippingCost != nil {
		breakdown = h.calc.ProjectedProfitWithShipping(req.PurchasePrice, req.MarketValue, *req.ShippingCost)
	} else {
		breakdown = h.calc.ProjectedProfit(req.PurchasePrice, req.MarketValue)
	}

	c.JSON(http.StatusOK, breakdown)
}
