package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix names the staging files written next to the backing file.
const TempFilePrefix = ".notepad-tmp-"

// WriteFileAtomic replaces filename with data so that readers see either the
// old or the new collection, never a partial one.
//
// perm applies to new files. When filename already exists its mode is kept,
// so a user who tightened the permissions of their notes does not lose them
// on the next save.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(filename)
	if info, statErr := os.Stat(filename); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", filename, err)
	}
	staged := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(staged)
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set mode on staged file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write staged file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync staged file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close staged file: %w", err)
	}
	if err = os.Rename(staged, filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk where the platform allows opening a
// directory. Failure only weakens durability, the new file is already in place.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
