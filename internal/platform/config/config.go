package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// DatabaseURL enables the pgsql-backed currency registry when set; the
	// embedded ISO 4217 table is used otherwise.
	DatabaseURL string

	// RedisAddr enables the Redis rate cache when set; the in-memory cache is
	// used otherwise.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ProviderBaseURL string
	ProviderTimeout time.Duration

	// BaseCurrencyCode is the ISO 4217 numeric code all provider records are
	// quoted against (980 = UAH).
	BaseCurrencyCode int

	RateCacheTTL time.Duration

	RetryMaxAttempts int
	RetryBaseDelay   time.Duration

	BreakerFailureThreshold int
	BreakerResetTimeout     time.Duration

	// RateLimit is an ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PROVIDER_BASE_URL", "https://api.monobank.ua")
	viper.SetDefault("PROVIDER_TIMEOUT", "5s")
	viper.SetDefault("BASE_CURRENCY_CODE", 980)
	viper.SetDefault("RATE_CACHE_TTL", "300s")
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_BASE_DELAY", "1s")
	viper.SetDefault("BREAKER_FAILURE_THRESHOLD", 3)
	viper.SetDefault("BREAKER_RESET_TIMEOUT", "60s")
	viper.SetDefault("RATE_LIMIT", "100-M")

	// Environment variables override defaults and .env file values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("PGSQL_URL not set; using the embedded currency table.")
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set; using the in-memory rate cache.")
	}

	cfg.ProviderBaseURL = viper.GetString("PROVIDER_BASE_URL")

	cfg.ProviderTimeout = durationOrDefault("PROVIDER_TIMEOUT", 5*time.Second)
	cfg.RateCacheTTL = durationOrDefault("RATE_CACHE_TTL", 300*time.Second)
	cfg.RetryBaseDelay = durationOrDefault("RETRY_BASE_DELAY", time.Second)
	cfg.BreakerResetTimeout = durationOrDefault("BREAKER_RESET_TIMEOUT", 60*time.Second)

	cfg.BaseCurrencyCode = viper.GetInt("BASE_CURRENCY_CODE")

	cfg.RetryMaxAttempts = viper.GetInt("RETRY_MAX_ATTEMPTS")
	if cfg.RetryMaxAttempts < 1 {
		log.Printf("Warning: RETRY_MAX_ATTEMPTS must be at least 1, got %d. Defaulting to 3.\n", cfg.RetryMaxAttempts)
		cfg.RetryMaxAttempts = 3
	}

	cfg.BreakerFailureThreshold = viper.GetInt("BREAKER_FAILURE_THRESHOLD")
	if cfg.BreakerFailureThreshold < 1 {
		log.Printf("Warning: BREAKER_FAILURE_THRESHOLD must be at least 1, got %d. Defaulting to 3.\n", cfg.BreakerFailureThreshold)
		cfg.BreakerFailureThreshold = 3
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

// durationOrDefault parses a duration config value, falling back to def on an
// invalid or empty value.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
