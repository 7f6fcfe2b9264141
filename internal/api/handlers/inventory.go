package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/sportscard-tracker/internal/database"
	"github.com/codyseavey/sportscard-tracker/internal/models"
)

type InventoryHandler struct {
	repo *database.Repository
}

func NewInventoryHandler(repo *database.Repository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

// ListInventory returns purchase lots, optionally filtered by sold status
// (?sold=true / ?sold=false).
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	var sold *bool
	if soldStr := c.Query("sold"); soldStr != "" {
		v, err := strconv.ParseBool(soldStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sold filter"})
			return
		}
		sold = &v
	}

	items, err := h.repo.ListInventory(sold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddInventoryItem records a purchase lot.
func (h *InventoryHandler) AddInventoryItem(c *gin.Context) {
	var req models.AddInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_date must be YYYY-MM-DD"})
		return
	}
	if req.PurchasePrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_price must be non-negative"})
		return
	}

	if _, err := h.repo.GetCard(req.CardID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card not found, track it first"})
		return
	}

	item := models.InventoryItem{
		CardID:        req.CardID,
		PurchaseDate:  purchaseDate,
		PurchasePrice: req.PurchasePrice,
		Condition:     req.Condition,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
	}
	if item.Condition == "" {
		item.Condition = "Raw"
	}

	if err := h.repo.AddInventoryItem(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RecordSale marks a lot as sold. A lot can be sold exactly once; repeat
// attempts get 409 and the original sale record stays intact.
func (h *InventoryHandler) RecordSale(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory id"})
		return
	}

	var req models.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	soldDate, err := time.Parse("2006-01-02", req.SoldDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sold_date must be YYYY-MM-DD"})
		return
	}
	if req.SoldPrice < 0 || req.SalesFees < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sold_price and sales_fees must be non-negative"})
		return
	}

	item, err := h.repo.RecordSale(uint(itemID), soldDate, req.SoldPrice, req.SalesFees)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
		case errors.Is(err, database.ErrAlreadySold):
			c.JSON(http.StatusConflict, gin.H{"error": "inventory item already sold"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// MonthlyReport aggregates realized sales for one month.
func (h *InventoryHandler) MonthlyReport(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	report, err := h.repo.MonthlyReport(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"month":  month,
		"report": report,
	})
}
