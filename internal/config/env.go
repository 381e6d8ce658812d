package config

import (
	"os"
	"strconv"
)

// FromEnv overlays STOCKD_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("STOCKD_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STOCKD_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("STOCKD_ALERT_THRESHOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.AlertThreshold = n
		}
	}
	if v := os.Getenv("STOCKD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STOCKD_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
