package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the gameday service.
// Environment variables are automatically parsed from the GAMEDAY_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Upstream catalog (IGDB over Twitch credentials)
	TwitchClientID     string `envconfig:"TWITCH_CLIENT_ID"`
	TwitchClientSecret string `envconfig:"TWITCH_CLIENT_SECRET"`
	IGDBBaseURL        string `envconfig:"IGDB_BASE_URL" default:"https://api.igdb.com/v4"`
	OAuthTokenURL      string `envconfig:"OAUTH_TOKEN_URL" default:"https://id.twitch.tv/oauth2/token"`

	// Fan-out tuning. StartYear is the catalog's practical origin; the
	// inter-request delay keeps the sustained upstream rate under 2 req/s.
	StartYear            int `envconfig:"START_YEAR" default:"1980"`
	FanoutDelayMs        int `envconfig:"FANOUT_DELAY_MS" default:"500"`
	FanoutTimeoutSeconds int `envconfig:"FANOUT_TIMEOUT_SECONDS" default:"180"`
	MaxRetries           int `envconfig:"MAX_RETRIES" default:"5"`

	// Daily cache retention: distinct dates kept before LRU eviction.
	// "This day" lookups are naturally bounded to 366 keys per year.
	CacheCapacity int `envconfig:"CACHE_CAPACITY" default:"400"`

	// User store (vote ledger)
	SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/gameday.db"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`

	// Pre-populate today's games at startup so /games/daily is ready
	// without a first-caller stall.
	WarmCacheOnStart bool `envconfig:"WARM_CACHE_ON_START" default:"true"`
}

// Validate checks invariants that envconfig defaults cannot express.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.StartYear < 1970 {
		return fmt.Errorf("START_YEAR must be >= 1970, got %d", c.StartYear)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("MAX_RETRIES must be >= 1, got %d", c.MaxRetries)
	}
	if c.FanoutDelayMs < 0 {
		return fmt.Errorf("FANOUT_DELAY_MS must be >= 0, got %d", c.FanoutDelayMs)
	}
	if c.CacheCapacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be >= 1, got %d", c.CacheCapacity)
	}
	return nil
}

// RequireCredentials fails when the upstream client id/secret pair is
// missing. Called at service startup, not by tests that fake the upstream.
func (c *Config) RequireCredentials() error {
	if c.TwitchClientID == "" || c.TwitchClientSecret == "" {
		return fmt.Errorf("GAMEDAY_TWITCH_CLIENT_ID and GAMEDAY_TWITCH_CLIENT_SECRET are required")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with GAMEDAY_
// Example: GAMEDAY_HTTP_PORT, GAMEDAY_TWITCH_CLIENT_ID
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("GAMEDAY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
