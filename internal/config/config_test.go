package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Cache.LeaderboardTTL())
	assert.Equal(t, time.Hour, cfg.Cache.AnalysisTTL())
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout())
	assert.Empty(t, cfg.Provider.BaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LEADERBOARD_TTL_SECONDS", "600")
	t.Setenv("ANALYSIS_TTL_SECONDS", "120")
	t.Setenv("PROVIDER_BASE_URL", "http://localhost:9999")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 10*time.Minute, cfg.Cache.LeaderboardTTL())
	assert.Equal(t, 2*time.Minute, cfg.Cache.AnalysisTTL())
	assert.Equal(t, "http://localhost:9999", cfg.Provider.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout())
}

func TestLoadInvalidInt(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEmptyValueFallsBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}
