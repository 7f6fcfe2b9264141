package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/sportscard-tracker/internal/database"
	"github.com/codyseavey/sportscard-tracker/internal/services"
)

type CardHandler struct {
	repo    *database.Repository
	tracker *services.PriceTracker
}

func NewCardHandler(repo *database.Repository, tracker *services.PriceTracker) *CardHandler {
	return &CardHandler{
		repo:    repo,
		tracker: tracker,
	}
}

// SearchCards proxies a free-text search against the price source.
func (h *CardHandler) SearchCards(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := h.tracker.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    results,
		"total_count": len(results),
	})
}

// ListCards returns all tracked cards.
func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.repo.ListCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// GetCard returns one tracked card.
func (h *CardHandler) GetCard(c *gin.Context) {
	cardID, ok := pathCardID(c)
	if !ok {
		return
	}

	card, err := h.repo.GetCard(cardID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, card)
}

// TrackCard starts tracking a card by catalog ID.
func (h *CardHandler) TrackCard(c *gin.Context) {
	cardID, ok := pathCardID(c)
	if !ok {
		return
	}

	result := h.tracker.Track(c.Request.Context(), cardID)
	if !result.OK {
		c.JSON(statusForKind(result.Kind), gin.H{"error": result.Error, "error_kind": result.Kind})
		return
	}

	card, err := h.repo.GetCard(cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, card)
}

// GetPriceHistory returns a card's snapshots within the lookback window,
// most recent first.
func (h *CardHandler) GetPriceHistory(c *gin.Context) {
	cardID, ok := pathCardID(c)
	if !ok {
		return
	}

	days := 30
	if daysStr := c.Query("days"); daysStr != "" {
		if n, err := strconv.Atoi(daysStr); err == nil && n > 0 {
			days = n
		}
	}

	if _, err := h.repo.GetCard(cardID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	snaps, err := h.repo.ListSnapshots(cardID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"card_id":   cardID,
		"days":      days,
		"snapshots": snaps,
	})
}

func pathCardID(c *gin.Context) (int, bool) {
	cardID, err := strconv.Atoi(c.Param("id"))
	if err != nil || cardID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return 0, false
	}
	return cardID, true
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.ErrKindValidation:
		return http.StatusBadRequest
	case services.ErrKindDomain:
		return http.StatusConflict
	case services.ErrKindSource:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
