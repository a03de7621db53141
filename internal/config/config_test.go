package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "https://api.igdb.com/v4", cfg.IGDBBaseURL)
	assert.Equal(t, "https://id.twitch.tv/oauth2/token", cfg.OAuthTokenURL)
	assert.Equal(t, 1980, cfg.StartYear)
	assert.Equal(t, 500, cfg.FanoutDelayMs)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 400, cfg.CacheCapacity)
	assert.Equal(t, "./data/gameday.db", cfg.SQLitePath)
	assert.True(t, cfg.WarmCacheOnStart)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("GAMEDAY_HTTP_PORT", "9090")
	t.Setenv("GAMEDAY_START_YEAR", "1990")
	t.Setenv("GAMEDAY_WARM_CACHE_ON_START", "false")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 1990, cfg.StartYear)
	assert.False(t, cfg.WarmCacheOnStart)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort:      8080,
			StartYear:     1980,
			MaxRetries:    5,
			CacheCapacity: 400,
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.HTTPPort = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.StartYear = 1969
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.MaxRetries = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.FanoutDelayMs = -1
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.CacheCapacity = 0
	assert.Error(t, cfg.Validate())
}

func TestRequireCredentials(t *testing.T) {
	cfg := &Config{TwitchClientID: "id", TwitchClientSecret: "secret"}
	assert.NoError(t, cfg.RequireCredentials())

	cfg.TwitchClientSecret = ""
	assert.Error(t, cfg.RequireCredentials())
}
