package platform

import (
	"os"
	"path/filepath"
)

// Default backing file names, created in the user's home directory.
const (
	DataFileName     = ".note_app_data.json"
	DatabaseFileName = ".note_app_data.db"
)

// DefaultDataFile returns the backing file used when no path is given.
// It falls back to the working directory when the home directory is unknown.
func DefaultDataFile() string {
	return homeFile(DataFileName)
}

// DefaultDataPath returns the default location for the given adapter.
func DefaultDataPath(adapter string) string {
	if adapter == AdapterSQLite {
		return homeFile(DatabaseFileName)
	}
	return DefaultDataFile()
}

func homeFile(name string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", name)
	}
	return filepath.Join(home, name)
}
