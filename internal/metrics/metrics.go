// Package metrics provides Prometheus metrics for the card tracker.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardtracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardtracker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Price Source Metrics
	SourceRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardtracker_source_requests_total",
			Help: "Total number of SportsCardsPro API requests made",
		},
	)

	SourceRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardtracker_source_retries_total",
			Help: "Total number of SportsCardsPro request retries",
		},
	)

	SourceFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardtracker_source_failures_total",
			Help: "SportsCardsPro requests that failed after all retries",
		},
	)

	// Tracking Metrics
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardtracker_refresh_total",
			Help: "Per-card refresh outcomes",
		},
		[]string{"result"}, // "success" or "failed"
	)

	RefreshBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cardtracker_refresh_batch_duration_seconds",
			Help:    "Time taken to refresh all tracked cards",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	TrackedCardsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardtracker_tracked_cards_total",
			Help: "Number of cards being tracked",
		},
	)

	// Deal Metrics
	DealScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardtracker_deal_scans_total",
			Help: "Total number of bulk deal scans",
		},
	)

	DealsFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cardtracker_deals_found",
			Help:    "Number of candidates returned per deal scan",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)
)
