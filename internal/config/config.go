// Package config loads tripsplit settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/storage"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// Storage
	StoreBackend string
	DataPath     string // JSON document, used by the json backend
	DBPath       string // SQLite database, used by the sqlite backend
	StorageKey   string

	// Ledger
	StrictWrites   bool
	SettledEpsilon decimal.Decimal

	// Observability
	LogLevel    string
	MetricsAddr string // empty disables the metrics endpoint
}

// Load reads the configuration from environment variables, falling back to
// defaults. Values that fail to parse keep their default; Validate reports
// the rest.
func Load() *Config {
	return &Config{
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendJSON)),
		DataPath:     getEnv("DATA_PATH", "./data/tripsplit.json"),
		DBPath:       getEnv("DB_PATH", "./data/tripsplit.db"),
		StorageKey:   getEnv("STORAGE_KEY", storage.DefaultKey),

		StrictWrites:   getEnvBool("STRICT_WRITES", false),
		SettledEpsilon: getEnvDecimal("SETTLED_EPSILON", decimal.RequireFromString("0.1")),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.StoreBackend {
	case BackendJSON:
		if c.DataPath == "" {
			errors = append(errors, "DATA_PATH is required for the json backend")
		}
	case BackendSQLite:
		if c.DBPath == "" {
			errors = append(errors, "DB_PATH is required for the sqlite backend")
		}
	case BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of json, sqlite, memory", c.StoreBackend))
	}

	if c.StorageKey == "" {
		errors = append(errors, "STORAGE_KEY cannot be empty")
	}
	// Zero is allowed and means only an exact zero counts as settled.
	if c.SettledEpsilon.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid settled epsilon %s: must not be negative", c.SettledEpsilon))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return fallback
}
