// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/coachctl.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Trend policies — how the performance-trend series is produced
// --------------------------------------------------------------------------

const (
	// TrendPolicySynthetic produces jittered placeholder points around the
	// current team averages.
	TrendPolicySynthetic = "synthetic"
	// TrendPolicyHistorical replays recorded match statistics grouped by day.
	TrendPolicyHistorical = "historical"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database. Empty means no remote source: the dashboard runs on the
	// local cache and demo roster alone.
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Record store. Empty means in-memory only.
	CachePath     string
	CacheStaleAge time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Trend series
	TrendPolicy    string
	TrendMinPoints int

	// Remote sync
	SyncDelay time.Duration

	// AI training plans
	AnthropicAPIKey string
	AIModel         string
	AIRecommendURL  string

	// Response cache
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A missing DATABASE_URL is not an error; the service degrades to its local
// sources.
func Load() (*Config, error) {
	return &Config{
		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		CachePath:     envOr("CACHE_PATH", "coach.db"),
		CacheStaleAge: time.Duration(envInt("CACHE_STALE_AGE_DAYS", 30)) * 24 * time.Hour,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		TrendPolicy:    envOr("TREND_POLICY", TrendPolicySynthetic),
		TrendMinPoints: envInt("TREND_MIN_POINTS", 3),

		SyncDelay: time.Duration(envInt("SYNC_DELAY_MS", 1000)) * time.Millisecond,

		AnthropicAPIKey: envOr("ANTHROPIC_API_KEY", ""),
		AIModel:         envOr("AI_MODEL", "claude-sonnet-4-5"),
		AIRecommendURL:  envOr("AI_RECOMMEND_URL", ""),

		CacheEnabled: envBool("CACHE_ENABLED", true),
		// 0 keeps the per-resource defaults in the cache package.
		CacheTTL: time.Duration(envInt("CACHE_TTL_SECONDS", 0)) * time.Second,
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
