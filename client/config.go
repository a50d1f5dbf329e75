package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment-driven client settings.
// Variables are read with the TUITER_ prefix, e.g. TUITER_BASE_URL.
type Config struct {
	// BaseURL selects the backend, e.g. the deployed service or a local one.
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:4000/api"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("TUITER", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return cfg, nil
}

// Options converts the config into construction options.
func (cfg Config) Options() []Option {
	return []Option{WithHTTPTimeout(cfg.HTTPTimeout), WithDebugLogging(cfg.Debug)}
}

// NewFromEnv builds a Client from TUITER_* variables. Explicit opts are
// applied after the environment-derived ones.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg.BaseURL, append(cfg.Options(), opts...)...)
}
