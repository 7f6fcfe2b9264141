package services

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/codyseavey/sportscard-tracker/internal/metrics"
	"github.com/codyseavey/sportscard-tracker/internal/models"
)

// PriceTracker fetches external price data and persists tracked cards and
// their snapshots. Per-card failures are returned as results, never
// propagated as fatal errors, so batch operations always run to completion.
type PriceTracker struct {
	store           Store
	source          PriceSource
	trendWindowDays int
}

func NewPriceTracker(store Store, source PriceSource, trendWindowDays int) *PriceTracker {
	if trendWindowDays <= 0 {
		trendWindowDays = 30
	}
	return &PriceTracker{
		store:           store,
		source:          source,
		trendWindowDays: trendWindowDays,
	}
}

// TrackResult is the per-card outcome of a track or refresh operation.
type TrackResult struct {
	CardID int       `json:"card_id"`
	OK     bool      `json:"ok"`
	Kind   ErrorKind `json:"error_kind,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// RefreshSummary aggregates a refresh-all batch.
type RefreshSummary struct {
	RunID      string        `json:"run_id"`
	Total      int           `json:"total"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Timestamp  time.Time     `json:"timestamp"`
	Results    []TrackResult `json:"results,omitempty"`
}

func failedResult(cardID int, err error) TrackResult {
	return TrackResult{
		CardID: cardID,
		OK:     false,
		Kind:   ClassifyError(err),
		Error:  err.Error(),
	}
}

// Track starts tracking a card: fetch, normalize, upsert the card record
// (FirstTracked is preserved across re-tracking), and append a snapshot.
func (t *PriceTracker) Track(ctx context.Context, cardID int) TrackResult {
	record, err := t.source.GetProduct(ctx, cardID)
	if err != nil {
		log.Printf("Track card %d: %v", cardID, err)
		return failedResult(cardID, err)
	}

	now := time.Now()
	card := record.Card(now)
	if err := t.store.UpsertCard(&card); err != nil {
		log.Printf("Track card %d: upsert failed: %v", cardID, err)
		return failedResult(cardID, err)
	}

	snap := record.Snapshot(now)
	if err := t.store.AppendSnapshot(&snap); err != nil {
		log.Printf("Track card %d: snapshot failed: %v", cardID, err)
		return failedResult(cardID, err)
	}

	return TrackResult{CardID: cardID, OK: true}
}

// Refresh re-fetches prices for an already-tracked card: touches the card's
// LastUpdated timestamp and appends a snapshot, without rewriting identity
// fields. Unknown cards are a validation failure.
func (t *PriceTracker) Refresh(ctx context.Context, cardID int) TrackResult {
	if _, err := t.store.GetCard(cardID); err != nil {
		return failedResult(cardID, err)
	}

	record, err := t.source.GetProduct(ctx, cardID)
	if err != nil {
		log.Printf("Refresh card %d: %v", cardID, err)
		metrics.RefreshTotal.WithLabelValues("failed").Inc()
		return failedResult(cardID, err)
	}

	if err := t.store.TouchCard(cardID); err != nil {
		metrics.RefreshTotal.WithLabelValues("failed").Inc()
		return failedResult(cardID, err)
	}

	snap := record.Snapshot(time.Now())
	if err := t.store.AppendSnapshot(&snap); err != nil {
		metrics.RefreshTotal.WithLabelValues("failed").Inc()
		return failedResult(cardID, err)
	}

	metrics.RefreshTotal.WithLabelValues("success").Inc()
	return TrackResult{CardID: cardID, OK: true}
}

// RefreshAll refreshes every tracked card sequentially, tolerating per-card
// failures and reporting aggregate counts.
func (t *PriceTracker) RefreshAll(ctx context.Context) (*RefreshSummary, error) {
	cards, err := t.store.ListCards()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary := &RefreshSummary{
		RunID:     uuid.New().String(),
		Total:     len(cards),
		Timestamp: start,
	}

	for _, card := range cards {
		result := t.Refresh(ctx, card.ID)
		if result.OK {
			summary.Successful++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, result)
	}

	metrics.RefreshBatchDuration.Observe(time.Since(start).Seconds())
	metrics.TrackedCardsTotal.Set(float64(len(cards)))
	log.Printf("Refresh batch %s: %d total, %d successful, %d failed",
		summary.RunID, summary.Total, summary.Successful, summary.Failed)

	return summary, nil
}

// SignificantChanges reports cards whose ungraded price trend over the
// lookback window exceeds the threshold in absolute value, sorted by
// absolute trend descending.
func (t *PriceTracker) SignificantChanges(lookbackDays int, thresholdPercent float64) ([]models.PriceChange, error) {
	if lookbackDays <= 0 {
		lookbackDays = t.trendWindowDays
	}

	cards, err := t.store.ListCards()
	if err != nil {
		return nil, err
	}

	var changes []models.PriceChange
	for _, card := range cards {
		history, err := t.store.ListSnapshots(card.ID, lookbackDays)
		if err != nil {
			continue
		}

		trend, ok := models.TrendPercent(history, models.FieldUngraded)
		if !ok || math.Abs(trend) <= thresholdPercent {
			continue
		}

		var latestPrice int64
		if latest, err := t.store.LatestSnapshot(card.ID); err == nil {
			latestPrice = latest.UngradedPrice
		}

		changes = append(changes, models.PriceChange{
			CardID:       card.ID,
			ProductName:  card.ProductName,
			ConsoleName:  card.ConsoleName,
			TrendPercent: trend,
			LatestPrice:  latestPrice,
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return math.Abs(changes[i].TrendPercent) > math.Abs(changes[j].TrendPercent)
	})

	return changes, nil
}

// Search looks up products matching a query without tracking them.
func (t *PriceTracker) Search(ctx context.Context, query string, limit int) ([]models.ProductRecord, error) {
	return t.source.SearchProducts(ctx, query, limit)
}
