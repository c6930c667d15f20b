// Package transfer moves notes between the store and loose files:
// collection files (JSON/YAML) and one-note-per-file Markdown.
package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/notepad/pkg/adapters/fs"
	"github.com/aretw0/notepad/pkg/core"
)

const filePerm os.FileMode = 0644

// ExportFile writes the whole collection to path, encoded by its extension.
func ExportFile(path string, notes []core.Note) error {
	data, err := fs.SerializerFor(path).Encode(notes)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return fs.WriteFileAtomic(path, data, filePerm)
}

// ExportDir writes one Markdown file per note into dir, named NNN-slug.md.
// It returns the paths written, in note order.
func ExportDir(dir string, notes []core.Note) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		data, err := fs.MarshalMarkdown(n)
		if err != nil {
			return paths, fmt.Errorf("encode note %d: %w", n.ID, err)
		}
		path := filepath.Join(dir, FileName(n))
		if err := fs.WriteFileAtomic(path, data, filePerm); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileName returns the Markdown file name used by ExportDir.
func FileName(n core.Note) string {
	return fmt.Sprintf("%03d-%s.md", n.ID, Slug(n.Title))
}

// Slug turns a title into a lower-case, dash-separated file name fragment.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "note"
	}
	return slug
}

// Collect reads every file matched by patterns and returns the notes they hold.
//
// Patterns are doublestar globs ("notes/**/*.md"); a plain path matches itself.
// .json, .yaml and .yml files are decoded as whole collections. Any other file
// is read as a single Markdown note; when it has no title in its front matter
// the file name (without extension) is used.
func Collect(patterns ...string) ([]core.Note, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	var notes []core.Note
	for _, path := range files {
		found, err := readFile(path)
		if err != nil {
			return nil, err
		}
		notes = append(notes, found...)
	}
	return notes, nil
}

func readFile(path string) ([]core.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if s, ok := fs.DefaultSerializers()[ext]; ok {
		notes, err := s.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return notes, nil
	}

	note, err := fs.ParseMarkdown(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if note.Title == "" {
		note.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return []core.Note{note}, nil
}
