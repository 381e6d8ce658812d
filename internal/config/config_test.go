package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("httpAddr default: %q", cfg.HTTPAddr)
	}
	if cfg.AlertThreshold != 5 {
		t.Fatalf("alertThreshold default: %d", cfg.AlertThreshold)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockd.json")
	body := `{"httpAddr":":9090","alertThreshold":3,"log":{"level":"debug"}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.AlertThreshold != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level not loaded: %+v", cfg.Log)
	}
	// untouched fields keep defaults
	if cfg.Log.Format != "text" {
		t.Fatalf("log format default lost: %+v", cfg.Log)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockd.yaml")
	body := "httpAddr: \":7070\"\nalertThreshold: 10\nlog:\n  format: json\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" || cfg.AlertThreshold != 10 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("log format not loaded: %+v", cfg.Log)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFromEnvOverlay(t *testing.T) {
	t.Setenv("STOCKD_HTTP_ADDR", ":6060")
	t.Setenv("STOCKD_ALERT_THRESHOLD", "7")
	t.Setenv("STOCKD_LOG_LEVEL", "warn")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.HTTPAddr != ":6060" {
		t.Fatalf("env httpAddr not applied: %q", cfg.HTTPAddr)
	}
	if cfg.AlertThreshold != 7 {
		t.Fatalf("env threshold not applied: %d", cfg.AlertThreshold)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env log level not applied: %q", cfg.Log.Level)
	}
}

func TestFromEnvRejectsNegativeThreshold(t *testing.T) {
	t.Setenv("STOCKD_ALERT_THRESHOLD", "-2")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.AlertThreshold != 5 {
		t.Fatalf("negative threshold must be ignored, got %d", cfg.AlertThreshold)
	}
}
