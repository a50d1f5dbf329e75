package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Supported DB drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the configuration for the tuiter dev backend.
// Environment variables are parsed from the TUITER_SERVER_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP Configuration
	HTTPPort        int           `envconfig:"HTTP_PORT" default:"4000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HealthInterval  time.Duration `envconfig:"HEALTH_INTERVAL" default:"5s"`

	// Storage
	DBDriver       string        `envconfig:"DB_DRIVER" default:"memory"`
	// SQLitePath defaults to ~/.tuiter/tuiter.db when empty.
	SQLitePath     string        `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN    string        `envconfig:"POSTGRES_DSN" default:""`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"30s"`

	// Passwords
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`
}

// Validate checks driver selection and its required settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("TUITER_SERVER_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Example: TUITER_SERVER_HTTP_PORT, TUITER_SERVER_DB_DRIVER
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TUITER_SERVER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:     EnvTesting,
		LogLevel:        "disabled",
		HTTPPort:        4000,
		ShutdownTimeout: 5 * time.Second,
		HealthInterval:  50 * time.Millisecond,
		DBDriver:        DriverMemory,
		ConnectTimeout:  5 * time.Second,
		BcryptCost:      bcrypt.MinCost,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
