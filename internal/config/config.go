// Package config loads the optional notepad configuration file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config is the user configuration. Every field has a usable default.
type Config struct {
	// DataFile is the backing file. Empty means the adapter default in $HOME.
	DataFile string
	// Adapter is the storage adapter name: "fs" or "sqlite".
	Adapter  string
	ReadOnly bool
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Adapter:  "fs",
		LogLevel: "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Adapter {
	case "fs", "sqlite":
	default:
		return fmt.Errorf("unknown adapter %q (want fs or sqlite)", c.Adapter)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for LogLevel, falling back to Info.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
