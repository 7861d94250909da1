package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Analysis  AnalysisConfig
	Database  DatabaseConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"6060"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// AnalysisConfig bounds the markup accepted for analysis.
type AnalysisConfig struct {
	MaxHTMLBytes int `envconfig:"MAX_HTML_BYTES" default:"10485760"`
}

// DatabaseConfig holds the mapping store configuration. An empty URL
// disables the store.
type DatabaseConfig struct {
	URL              string        `envconfig:"DATABASE_URL"`
	SeedFile         string        `envconfig:"MAPPINGS_SEED_FILE"`
	QueryTimeout     time.Duration `envconfig:"DATABASE_QUERY_TIMEOUT" default:"5s"`
	BreakerFailures  uint32        `envconfig:"DATABASE_BREAKER_FAILURES" default:"5"`
	BreakerOpenDelay time.Duration `envconfig:"DATABASE_BREAKER_TIMEOUT" default:"30s"`
}

// Enabled reports whether a database was configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// LogConfig holds logging configuration. An empty Level selects info, or
// debug when Development is set.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("invalid config: PORT must not be empty")
	}
	if c.Analysis.MaxHTMLBytes <= 0 {
		return fmt.Errorf("invalid config: MAX_HTML_BYTES must be positive, got %d", c.Analysis.MaxHTMLBytes)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid config: rate limit needs positive RATE_LIMIT_RPS and RATE_LIMIT_BURST")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "6060",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		Analysis: AnalysisConfig{
			MaxHTMLBytes: 10 << 20,
		},
		Database: DatabaseConfig{
			QueryTimeout:     5 * time.Second,
			BreakerFailures:  5,
			BreakerOpenDelay: 30 * time.Second,
		},
		Logging: LogConfig{
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
