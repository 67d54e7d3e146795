// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// StorageConfig holds MongoDB connection configuration
type StorageConfig struct {
	// URL is the MongoDB connection string
	URL string
	// Database is the database name
	Database string
}

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from the environment, with an optional .env file.
//
// TEST_DATABASE_URL, when set, overrides DATABASE_URL so a suite run can be
// pointed at an isolated database instance without touching the regular
// configuration.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Storage: StorageConfig{
			URL:      getEnv("DATABASE_URL", "mongodb://localhost:27017"),
			Database: getEnv("DATABASE_NAME", "blogapi"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", false),
		},
	}

	if testURL := os.Getenv("TEST_DATABASE_URL"); testURL != "" {
		cfg.Storage.URL = testURL
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
