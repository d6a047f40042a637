package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the chart generation service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8098"`

	// Home Assistant API configuration
	HABaseURL string `env:"HA_BASE_URL,default=http://supervisor/core"`
	HAToken   string `env:"HA_TOKEN"`

	// Output directories: charts go to the share directory, falling back
	// to the web-servable directory when the share directory is absent
	ShareDir string `env:"SHARE_DIR,default=/share"`
	WWWDir   string `env:"WWW_DIR,default=/config/www"`

	// History fetch configuration. Retries default to 0: a chart request
	// makes a single fetch attempt and reports data_unavailable on failure.
	HistoryTimeoutSec int `env:"HISTORY_TIMEOUT_SEC,default=30"`
	HistoryRetries    int `env:"HISTORY_RETRIES,default=0"`

	// Local testing configuration
	MockupMode bool `env:"MOCKUP_MODE,default=false"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
