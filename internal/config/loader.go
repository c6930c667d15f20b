package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/notepad"
	configFile = "config.yaml"
)

// rawConfig is the YAML-unmarshaling intermediary.
// Pointers distinguish "absent" from the zero value.
type rawConfig struct {
	DataFile string `yaml:"data_file"`
	Adapter  string `yaml:"adapter"`
	ReadOnly *bool  `yaml:"read_only"`
	LogLevel string `yaml:"log_level"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/notepad/config.yaml.
// A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	mergeConfig(cfg, &raw)
	cfg.DataFile = ExpandPath(cfg.DataFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.DataFile != "" {
		cfg.DataFile = raw.DataFile
	}
	if raw.Adapter != "" {
		cfg.Adapter = strings.ToLower(raw.Adapter)
	}
	if raw.ReadOnly != nil {
		cfg.ReadOnly = *raw.ReadOnly
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(raw.LogLevel)
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
