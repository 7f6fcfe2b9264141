package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/sportscard-tracker/internal/services"
)

type PriceHandler struct {
	tracker         *services.PriceTracker
	changeThreshold float64
}

func NewPriceHandler(tracker *services.PriceTracker, changeThreshold float64) *PriceHandler {
	return &PriceHandler{
		tracker:         tracker,
		changeThreshold: changeThreshold,
	}
}

// RefreshCard refreshes prices for one tracked card.
func (h *PriceHandler) RefreshCard(c *gin.Context) {
	cardID, ok := pathCardID(c)
	if !ok {
		return
	}

	result := h.tracker.Refresh(c.Request.Context(), cardID)
	if !result.OK {
		c.JSON(statusForKind(result.Kind), gin.H{"error": result.Error, "error_kind": result.Kind})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshAll refreshes every tracked card, tolerating per-card failures.
func (h *PriceHandler) RefreshAll(c *gin.Context) {
	summary, err := h.tracker.RefreshAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SignificantChanges reports cards with large recent price moves.
// Query parameters: days (lookback window), threshold (percent).
func (h *PriceHandler) SignificantChanges(c *gin.Context) {
	days := 7
	if daysStr := c.Query("days"); daysStr != "" {
		if n, err := strconv.Atoi(daysStr); err == nil && n > 0 {
			days = n
		}
	}

	threshold := h.changeThreshold
	if thresholdStr := c.Query("threshold"); thresholdStr != "" {
		f, err := strconv.ParseFloat(thresholdStr, 64)
		if err != nil || f < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		threshold = f
	}

	changes, err := h.tracker.SignificantChanges(days, threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":      days,
		"threshold": threshold,
		"changes":   changes,
	})
}
