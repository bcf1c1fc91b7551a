package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORE_BACKEND", "DATA_PATH", "DB_PATH", "STORAGE_KEY", "STRICT_WRITES", "SETTLED_EPSILON", "LOG_LEVEL", "METRICS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, BackendJSON, cfg.StoreBackend)
	assert.Equal(t, "./data/tripsplit.json", cfg.DataPath)
	assert.Equal(t, storage.DefaultKey, cfg.StorageKey)
	assert.False(t, cfg.StrictWrites)
	assert.Equal(t, "0.1", cfg.SettledEpsilon.String())
	assert.Empty(t, cfg.MetricsAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("DB_PATH", "/var/lib/tripsplit/trips.db")
	t.Setenv("STRICT_WRITES", "true")
	t.Setenv("SETTLED_EPSILON", "0.01")
	t.Setenv("METRICS_ADDR", ":9090")

	cfg := Load()

	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "/var/lib/tripsplit/trips.db", cfg.DBPath)
	assert.True(t, cfg.StrictWrites)
	assert.Equal(t, "0.01", cfg.SettledEpsilon.String())
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	require.NoError(t, cfg.Validate())
}

func TestZeroSettledEpsilon(t *testing.T) {
	t.Setenv("SETTLED_EPSILON", "0")

	cfg := Load()

	assert.True(t, cfg.SettledEpsilon.IsZero())
	require.NoError(t, cfg.Validate())

	balances := []calculator.Balance{
		{PersonID: "P1", Net: decimal.NewFromInt(50)},
		{PersonID: "P2", Net: decimal.NewFromInt(-50)},
	}
	transfers := calculator.SuggestTransfers(balances, cfg.SettledEpsilon)
	require.Len(t, transfers, 1)
	assert.Equal(t, "50", transfers[0].Amount.String())
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("STRICT_WRITES", "maybe")
	t.Setenv("SETTLED_EPSILON", "a lot")

	cfg := Load()

	assert.False(t, cfg.StrictWrites)
	assert.Equal(t, "0.1", cfg.SettledEpsilon.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "memory backend", mutate: func(c *Config) { c.StoreBackend = BackendMemory }},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.StoreBackend = "postgres" },
			wantErr: "invalid store backend 'postgres'",
		},
		{
			name:    "json backend without path",
			mutate:  func(c *Config) { c.DataPath = "" },
			wantErr: "DATA_PATH is required",
		},
		{
			name: "sqlite backend without path",
			mutate: func(c *Config) {
				c.StoreBackend = BackendSQLite
				c.DBPath = ""
			},
			wantErr: "DB_PATH is required",
		},
		{
			name:    "empty storage key",
			mutate:  func(c *Config) { c.StorageKey = "" },
			wantErr: "STORAGE_KEY cannot be empty",
		},
		{
			name:    "negative epsilon",
			mutate:  func(c *Config) { c.SettledEpsilon = c.SettledEpsilon.Neg() },
			wantErr: "invalid settled epsilon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_BACKEND", "")
			t.Setenv("DATA_PATH", "")
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
