package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "notes.json")
		content := []byte(`[{"id": 0}]`)

		if err := WriteFileAtomic(filename, content, DefaultPerm); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("expected %q, got %q", content, got)
		}
	})

	t.Run("Replaces Longer File Without Leftovers", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "notes.json")
		if err := os.WriteFile(filename, []byte(strings.Repeat("x", 4096)), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}

		if err := WriteFileAtomic(filename, []byte("[]"), DefaultPerm); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "[]" {
			t.Errorf("expected old bytes to be gone, got %d bytes", len(got))
		}

		matches, _ := filepath.Glob(filepath.Join(dir, TempFilePrefix+"*"))
		if len(matches) != 0 {
			t.Errorf("temp files left behind: %v", matches)
		}
	})

	t.Run("Applies Permissions", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "private.json")

		if err := WriteFileAtomic(filename, []byte("[]"), 0600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		info, err := os.Stat(filename)
		if err != nil {
			t.Fatal(err)
		}
		// Windows only honours the read-only bit.
		t.Logf("File permissions: %v", info.Mode())
	})

	t.Run("Keeps Mode of Existing File", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions only")
		}
		filename := filepath.Join(t.TempDir(), "notes.json")
		if err := os.WriteFile(filename, []byte("[]"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.Chmod(filename, 0400); err != nil {
			t.Fatal(err)
		}

		if err := WriteFileAtomic(filename, []byte("[ ]"), 0644); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		info, err := os.Stat(filename)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0400 {
			t.Errorf("expected mode 0400 to survive, got %v", info.Mode().Perm())
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing", "notes.json")

		if err := WriteFileAtomic(filename, []byte("[]"), DefaultPerm); err == nil {
			t.Error("expected error when directory is missing, got nil")
		}
	})
}
