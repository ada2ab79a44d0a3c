package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadFile reads, decodes and validates the configuration from a TOML file.
// A missing file is reported with the underlying fs.ErrNotExist preserved so
// callers can distinguish it from a malformed one.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
