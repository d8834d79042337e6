package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, loaded from the environment.
// godotenv is loaded by the entrypoints before Load is called.
type Config struct {
	// Server
	Port            string
	Environment     string // "development" or "production"
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string

	// Auth
	JWTSecret []byte
	TokenTTL  time.Duration

	// Redis (optional - the service degrades gracefully without it)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Feed cache
	FeedCacheTTL time.Duration

	// Logging
	LogLevel string
	LogFile  string

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string
	SamplingRate   float64
}

// Load reads configuration from environment variables.
// JWT_SECRET is the only hard requirement.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(secret),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 300),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		FeedCacheTTL: getEnvDuration("FEED_CACHE_TTL", 10*time.Second),

		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:  getEnvOrDefault("LOG_FILE", "server.log"),

		TracingEnabled: getEnvBool("OTEL_ENABLED", false),
		OTLPEndpoint:   getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		SamplingRate:   getEnvFloat("OTEL_SAMPLING_RATE", 1.0),
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
