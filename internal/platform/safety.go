package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the sandbox directory, under the system temp dir, used by development builds.
const DevDirName = "notepad-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveDataPath determines the actual backing file based on safety rules.
//
// Without forceTemp the user path is returned as is (or defaultPath when empty).
// With forceTemp the file is re-rooted into the sandbox directory, unless it
// already lives under the system temp dir.
func ResolveDataPath(userPath, defaultPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = defaultPath
	}
	if !forceTemp {
		return userPath
	}

	clean := filepath.Clean(userPath)
	rel, err := filepath.Rel(os.TempDir(), clean)
	if err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == string(os.PathSeparator) {
		name = filepath.Base(defaultPath)
	}
	return filepath.Join(os.TempDir(), DevDirName, name)
}
