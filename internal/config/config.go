// Package config loads server settings from the environment.
package config

import (
	"os"
	"time"
)

// Config holds the server settings.
type Config struct {
	DatabaseURL   string
	HTTPPort      string
	SessionSecret string
	SessionTTL    time.Duration
}

// FromEnv reads the configuration from environment variables, falling
// back to development defaults.
func FromEnv() Config {
	return Config{
		DatabaseURL:   getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=feedback port=5432 sslmode=disable"),
		HTTPPort:      getenv("HTTP_PORT", "8080"),
		SessionSecret: getenv("SESSION_SECRET", "dev-secret-change-me"),
		SessionTTL:    getduration("SESSION_TTL", 24*time.Hour),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
