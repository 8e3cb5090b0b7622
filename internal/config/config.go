// Package config handles configuration loading and validation for the dwfv
// command line tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the tool configuration. Every field has a working default;
// the configuration file is optional.
type Config struct {
	// Output configuration for reports.
	Output OutputConfig `toml:"output"`

	// Follow configuration for the when --follow mode.
	Follow FollowConfig `toml:"follow"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging"`
}

// OutputConfig controls how values and findings are printed.
type OutputConfig struct {
	// Radix for value rendering: "hex" or "bin".
	Radix string `toml:"radix"`
}

// FollowConfig controls trace re-loading in follow mode.
type FollowConfig struct {
	// DebounceMs is how long to wait after a file event before re-reading,
	// in milliseconds, coalescing the write bursts simulators produce.
	DebounceMs int `toml:"debounce_ms"`
}

// Debounce returns the debounce interval as a duration.
func (f FollowConfig) Debounce() time.Duration {
	return time.Duration(f.DebounceMs) * time.Millisecond
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:  OutputConfig{Radix: "hex"},
		Follow:  FollowConfig{DebounceMs: 100},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Load reads a TOML configuration file, applying defaults for absent
// fields. A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Output.Radix {
	case "hex", "bin":
	default:
		return fmt.Errorf("output.radix must be \"hex\" or \"bin\", got %q", c.Output.Radix)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %q", c.Logging.Level)
	}
	if c.Follow.DebounceMs < 0 {
		return fmt.Errorf("follow.debounce_ms must not be negative")
	}
	return nil
}
