// Package config handles configuration loading and cart home resolution.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultStorageKey is the key the cart blob is stored under.
const DefaultStorageKey = "@GoMarketPlace:products"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// StorageConfig selects where the cart blob is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "sqlite" | "memory"
	Key     string `yaml:"key"`
}

// LogConfig controls the default slog logger.
type LogConfig struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// CartConfig is the root per-home configuration.
type CartConfig struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns a CartConfig populated with sensible defaults.
func Default() *CartConfig {
	return &CartConfig{
		Storage: StorageConfig{
			Backend: "sqlite",
			Key:     DefaultStorageKey,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*CartConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if st, ok := raw["storage"].(map[string]any); ok {
		if v, ok := st["backend"].(string); ok && v != "" {
			cfg.Storage.Backend = v
		}
		if v, ok := st["key"].(string); ok && v != "" {
			cfg.Storage.Key = v
		}
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v, ok := lg["level"].(string); ok && v != "" {
			cfg.Log.Level = v
		}
	}

	return cfg, nil
}
