package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "fs", cfg.Adapter)
	assert.Empty(t, cfg.DataFile)
	assert.False(t, cfg.ReadOnly)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	require.NoError(t, err, "should not error on missing file")
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_ValidYAML(t *testing.T) {
	path := writeConfig(t, "data_file: /srv/notes.yaml\nadapter: SQLite\nread_only: true\nlog_level: debug\n")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/notes.yaml", cfg.DataFile)
	assert.Equal(t, "sqlite", cfg.Adapter)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadFrom_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "read_only: false\n")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "fs", cfg.Adapter)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFrom_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, "data_file: ~/work/notes.json\n")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "work", "notes.json"), cfg.DataFile)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Malformed YAML", "adapter: [fs\n"},
		{"Unknown Adapter", "adapter: postgres\n"},
		{"Unknown Level", "log_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "relative", ExpandPath("relative"))
}
