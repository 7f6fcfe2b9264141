// Package config defines the tracker configuration. Fields are populated
// from a TOML file and then optionally overridden by CARDTRACKER_*
// environment variables.
package config

// Config is the root configuration structure.
type Config struct {
	API      APIConfig      `toml:"api"`
	Business BusinessConfig `toml:"business"`
	Server   ServerConfig   `toml:"server"`
}

// APIConfig holds SportsCardsPro API access parameters.
type APIConfig struct {
	Token             string `toml:"token"`
	BaseURL           string `toml:"base_url"`
	MaxRetries        int    `toml:"max_retries"`
	RetryDelaySeconds int    `toml:"retry_delay_seconds"`
}

// BusinessConfig holds the tunable arithmetic and heuristic constants.
// Monetary values are cents; percentages are plain decimals (13.0 = 13%).
type BusinessConfig struct {
	// FeePercent is the marketplace final value fee rate.
	FeePercent float64 `toml:"fee_percent"`
	// TransactionFeeCents is the fixed per-transaction marketplace fee.
	TransactionFeeCents int64 `toml:"transaction_fee_cents"`
	// DefaultShippingCents applies when a caller omits shipping.
	DefaultShippingCents int64 `toml:"default_shipping_cents"`
	// MinROIPercent is the default ROI floor for deal scans and analysis.
	MinROIPercent float64 `toml:"min_roi_percent"`
	// DiscountAssumption is the fraction of current market price assumed
	// achievable as a purchase price during deal scans. A documented
	// heuristic, not a real-listing comparison.
	DiscountAssumption float64 `toml:"discount_assumption"`
	// TrendBuyThresholdPercent gates deal scans: only cards whose trend is
	// at or below this (a meaningful price drop) are considered.
	TrendBuyThresholdPercent float64 `toml:"trend_buy_threshold_percent"`
	// SignificantChangePercent is the default threshold for the
	// price-change report.
	SignificantChangePercent float64 `toml:"significant_change_percent"`
	// TrendWindowDays is the default trend lookback window.
	TrendWindowDays int `toml:"trend_window_days"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port        string   `toml:"port"`
	DBPath      string   `toml:"db_path"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:           "https://www.sportscardspro.com",
			MaxRetries:        3,
			RetryDelaySeconds: 1,
		},
		Business: BusinessConfig{
			FeePercent:               13.0,
			TransactionFeeCents:      30,
			DefaultShippingCents:     500,
			MinROIPercent:            15.0,
			DiscountAssumption:       0.85,
			TrendBuyThresholdPercent: -5.0,
			SignificantChangePercent: 5.0,
			TrendWindowDays:          30,
		},
		Server: ServerConfig{
			Port:   "8080",
			DBPath: "./sportscards.db",
		},
	}
}
