package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the TOML configuration at path, merges it on top of the
// built-in defaults, and applies CARDTRACKER_* environment overrides.
// A missing file is not an error; defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides overwrites Config fields from well-known CARDTRACKER_*
// variables when set, so operators can inject the API token and deployment
// knobs without touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.API.Token, "CARDTRACKER_API_TOKEN")
	setStr(&cfg.API.BaseURL, "CARDTRACKER_API_BASE_URL")
	setInt(&cfg.API.MaxRetries, "CARDTRACKER_API_MAX_RETRIES")
	setInt(&cfg.API.RetryDelaySeconds, "CARDTRACKER_API_RETRY_DELAY_SECONDS")

	setFloat(&cfg.Business.FeePercent, "CARDTRACKER_FEE_PERCENT")
	setInt64(&cfg.Business.TransactionFeeCents, "CARDTRACKER_TRANSACTION_FEE_CENTS")
	setInt64(&cfg.Business.DefaultShippingCents, "CARDTRACKER_DEFAULT_SHIPPING_CENTS")
	setFloat(&cfg.Business.MinROIPercent, "CARDTRACKER_MIN_ROI_PERCENT")
	setFloat(&cfg.Business.DiscountAssumption, "CARDTRACKER_DISCOUNT_ASSUMPTION")
	setFloat(&cfg.Business.TrendBuyThresholdPercent, "CARDTRACKER_TREND_BUY_THRESHOLD_PERCENT")
	setFloat(&cfg.Business.SignificantChangePercent, "CARDTRACKER_SIGNIFICANT_CHANGE_PERCENT")
	setInt(&cfg.Business.TrendWindowDays, "CARDTRACKER_TREND_WINDOW_DAYS")

	setStr(&cfg.Server.Port, "CARDTRACKER_PORT")
	setStr(&cfg.Server.DBPath, "CARDTRACKER_DB_PATH")
	if v := os.Getenv("CARDTRACKER_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
