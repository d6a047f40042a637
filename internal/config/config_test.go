package config

import (
	"context"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != "8098" {
		t.Errorf("Expected default Port to be '8098', got '%s'", cfg.Port)
	}
	if cfg.HABaseURL != "http://supervisor/core" {
		t.Errorf("Expected default HABaseURL to be 'http://supervisor/core', got '%s'", cfg.HABaseURL)
	}
	if cfg.ShareDir != "/share" {
		t.Errorf("Expected default ShareDir to be '/share', got '%s'", cfg.ShareDir)
	}
	if cfg.WWWDir != "/config/www" {
		t.Errorf("Expected default WWWDir to be '/config/www', got '%s'", cfg.WWWDir)
	}
	if cfg.HistoryTimeoutSec != 30 {
		t.Errorf("Expected default HistoryTimeoutSec to be 30, got %d", cfg.HistoryTimeoutSec)
	}
	if cfg.HistoryRetries != 0 {
		t.Errorf("Expected default HistoryRetries to be 0, got %d", cfg.HistoryRetries)
	}
	if cfg.MockupMode {
		t.Error("Expected default MockupMode to be false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel to be 'info', got '%s'", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HA_BASE_URL", "http://homeassistant.local:8123")
	t.Setenv("HA_TOKEN", "test-token")
	t.Setenv("SHARE_DIR", "/tmp/share")
	t.Setenv("MOCKUP_MODE", "true")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port '9000', got '%s'", cfg.Port)
	}
	if cfg.HABaseURL != "http://homeassistant.local:8123" {
		t.Errorf("Expected overridden HABaseURL, got '%s'", cfg.HABaseURL)
	}
	if cfg.HAToken != "test-token" {
		t.Errorf("Expected HAToken 'test-token', got '%s'", cfg.HAToken)
	}
	if cfg.ShareDir != "/tmp/share" {
		t.Errorf("Expected ShareDir '/tmp/share', got '%s'", cfg.ShareDir)
	}
	if !cfg.MockupMode {
		t.Error("Expected MockupMode to be true")
	}
}
