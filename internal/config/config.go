package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"clarity/internal"
	"clarity/internal/errors"
)

// Config is the complete, validated runtime configuration.
type Config struct {
	Ledger  LedgerConfig
	Adapter AdapterConfig
	Runtime RuntimeConfig
}

// LedgerConfig controls where a sweep's artifacts and run files land.
type LedgerConfig struct {
	RootDir string `validate:"required"`
}

// AdapterConfig selects and configures the model backend a sweep invokes.
type AdapterConfig struct {
	Name       string `validate:"required"`
	RealModel  bool
	ModelPath  string
	GridRows   int
	GridCols   int
}

// RuntimeConfig holds cross-cutting execution settings.
type RuntimeConfig struct {
	LogLevel string
}

// Load reads configuration from the environment, loading a .env file
// first when present, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Info("no .env file found, using system environment variables")
	}

	cfg := &Config{
		Ledger:  loadLedgerConfig(),
		Adapter: loadAdapterConfig(),
		Runtime: loadRuntimeConfig(),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func loadLedgerConfig() LedgerConfig {
	return LedgerConfig{
		RootDir: getEnvOrDefault("CLARITY_LEDGER_ROOT", "./runs"),
	}
}

func loadAdapterConfig() AdapterConfig {
	return AdapterConfig{
		Name:      getEnvOrDefault("CLARITY_ADAPTER", "stub"),
		RealModel: getEnvBoolOrDefault("CLARITY_REAL_MODEL", false),
		ModelPath: getEnvOrDefault("CLARITY_MODEL_PATH", ""),
		GridRows:  getEnvIntOrDefault("CLARITY_PROBE_GRID_ROWS", 3),
		GridCols:  getEnvIntOrDefault("CLARITY_PROBE_GRID_COLS", 3),
	}
}

func loadRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Ledger.RootDir == "" {
		return errors.ConfigInvalid("ledger root directory is required")
	}
	if cfg.Adapter.Name == "" {
		return errors.ConfigInvalid("adapter name is required")
	}
	if cfg.Adapter.RealModel && cfg.Adapter.ModelPath == "" {
		return errors.ConfigInvalid("CLARITY_MODEL_PATH is required when CLARITY_REAL_MODEL is set")
	}
	if cfg.Adapter.GridRows <= 0 || cfg.Adapter.GridCols <= 0 {
		return errors.ConfigInvalid("probe grid dimensions must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
