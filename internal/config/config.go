// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/matchday.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage drivers selected from the database URL.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database. DatabaseURL is resolved through a fallback chain in Load.
	DatabaseURL    string        `ignored:"true"`
	DBPoolMinConns int           `envconfig:"DB_POOL_MIN_CONNS" default:"2"`
	DBPoolMaxConns int           `envconfig:"DB_POOL_MAX_CONNS" default:"10"`
	DBPoolMaxLife  time.Duration `envconfig:"DB_POOL_MAX_LIFE" default:"30m"`

	// API server
	APIHost     string `envconfig:"API_HOST" default:"0.0.0.0"`
	APIPort     int    `envconfig:"API_PORT" default:"5001"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"` // development, staging, production
	Debug       bool   `envconfig:"DEBUG" default:"false"`

	// CORS
	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Rate limiting
	RateLimitEnabled  bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`

	// Maintenance ticker; zero disables it.
	PoolStatsInterval time.Duration `envconfig:"POOL_STATS_INTERVAL" default:"30s"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.DatabaseURL = envOr("MATCHDAY_DATABASE_URL", envOr("DATABASE_URL", envOr("SUPABASE_DB_URL", "")))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("MATCHDAY_DATABASE_URL, DATABASE_URL, or SUPABASE_DB_URL must be set")
	}
	if cfg.DBPoolMaxConns < cfg.DBPoolMinConns {
		return nil, fmt.Errorf("DB_POOL_MAX_CONNS (%d) must be >= DB_POOL_MIN_CONNS (%d)",
			cfg.DBPoolMaxConns, cfg.DBPoolMinConns)
	}
	return &cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Driver reports which storage backend the database URL points at.
func (c *Config) Driver() string {
	if strings.HasPrefix(c.DatabaseURL, "sqlite://") || strings.HasPrefix(c.DatabaseURL, "file:") {
		return DriverSQLite
	}
	return DriverPostgres
}

// SQLitePath strips the sqlite:// scheme so the remainder can be handed to the
// driver. file: URLs are passed through untouched.
func (c *Config) SQLitePath() string {
	return strings.TrimPrefix(c.DatabaseURL, "sqlite://")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
