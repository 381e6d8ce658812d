package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// HTTPAddr is the listen address of the HTTP API.
	HTTPAddr string `json:"httpAddr" yaml:"httpAddr"`
	// DataDir is the root of durable state. Empty means DefaultDataDir().
	DataDir string `json:"dataDir" yaml:"dataDir"`
	// AlertThreshold is the quantity at or below which a stock mutation
	// publishes an alert. Subscribers additionally filter by their own
	// threshold.
	AlertThreshold int64 `json:"alertThreshold" yaml:"alertThreshold"`
	// Log carries level/format for the process logger.
	Log LogConfig `json:"log" yaml:"log"`
}

// LogConfig mirrors pkg/log.Config without importing it, keeping this
// package dependency-free for the CLI.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr:       ":8080",
		AlertThreshold: 5,
		Log:            LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a JSON or YAML file (by extension).
// If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
