package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultEnv                   = "development"
	defaultHTTPHost              = "0.0.0.0"
	defaultHTTPPort              = 8080
	defaultRedisDB               = 0
	defaultLeaderboardTTLSeconds = 3600
	defaultAnalysisTTLSeconds    = 3600
	defaultProviderTimeoutSecs   = 15
)

// Config keeps the runtime configuration for the service.
type Config struct {
	Env      string
	HTTP     HTTPConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Provider ProviderConfig
}

// HTTPConfig holds HTTP server related settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr renders the listen address in host:port form.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// RedisConfig stores Redis connection parameters. An empty Addr
// disables the HTTP response cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig stores result-cache TTLs per pipeline entry point.
type CacheConfig struct {
	LeaderboardTTLSeconds int
	AnalysisTTLSeconds    int
}

func (c CacheConfig) LeaderboardTTL() time.Duration {
	return time.Duration(c.LeaderboardTTLSeconds) * time.Second
}

func (c CacheConfig) AnalysisTTL() time.Duration {
	return time.Duration(c.AnalysisTTLSeconds) * time.Second
}

// ProviderConfig stores market-data provider settings. An empty
// BaseURL uses the provider's public endpoint.
type ProviderConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Load builds Config from environment variables.
func Load() (*Config, error) {
	host := getString("HTTP_HOST", defaultHTTPHost)
	port, err := getInt("HTTP_PORT", defaultHTTPPort)
	if err != nil {
		return nil, fmt.Errorf("parse HTTP_PORT: %w", err)
	}

	redisDB, err := getInt("REDIS_DB", defaultRedisDB)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_DB: %w", err)
	}

	leaderboardTTL, err := getInt("LEADERBOARD_TTL_SECONDS", defaultLeaderboardTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse LEADERBOARD_TTL_SECONDS: %w", err)
	}

	analysisTTL, err := getInt("ANALYSIS_TTL_SECONDS", defaultAnalysisTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse ANALYSIS_TTL_SECONDS: %w", err)
	}

	providerTimeout, err := getInt("PROVIDER_TIMEOUT_SECONDS", defaultProviderTimeoutSecs)
	if err != nil {
		return nil, fmt.Errorf("parse PROVIDER_TIMEOUT_SECONDS: %w", err)
	}

	return &Config{
		Env:  getString("APP_ENV", defaultEnv),
		HTTP: HTTPConfig{Host: host, Port: port},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			LeaderboardTTLSeconds: leaderboardTTL,
			AnalysisTTLSeconds:    analysisTTL,
		},
		Provider: ProviderConfig{
			BaseURL:        getString("PROVIDER_BASE_URL", ""),
			TimeoutSeconds: providerTimeout,
		},
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}
