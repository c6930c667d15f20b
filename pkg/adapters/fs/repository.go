package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/aretw0/notepad/pkg/core"
)

const (
	// DefaultPerm is the mode of a newly written backing file. Notes are private.
	DefaultPerm os.FileMode = 0600

	defaultDebounce = 50 * time.Millisecond
)

// Repository implements core.Repository on top of a single backing file.
// The whole collection is read on Load and rewritten on every Save.
type Repository struct {
	Path       string
	config     Config
	serializer Serializer

	mu            sync.RWMutex
	lastDigest    uint64
	hasDigest     bool
	lastSave      *time.Time
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	MustExist bool // fail Initialize when the parent directory is missing instead of creating it
	ReadOnly  bool
	Perm      os.FileMode
	Logger    *slog.Logger

	// Serializer overrides the extension-based choice.
	Serializer Serializer

	// Debounce groups bursts of filesystem events into one notification. Zero means 50ms.
	Debounce time.Duration

	// ErrorHandler receives runtime watcher failures that are otherwise only logged.
	ErrorHandler func(error)
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	if config.Perm == 0 {
		config.Perm = DefaultPerm
	}
	if config.Debounce <= 0 {
		config.Debounce = defaultDebounce
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	serializer := config.Serializer
	if serializer == nil {
		serializer = SerializerFor(config.Path)
	}

	return &Repository{
		Path:       filepath.Clean(config.Path),
		config:     config,
		serializer: serializer,
	}
}

// Initialize makes sure the directory holding the backing file exists.
// The file itself is only created by the first Save.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.Path == "" || r.Path == "." {
		return errors.New("backing file path is empty")
	}

	dir := filepath.Dir(r.Path)
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("not a directory: %s", dir)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	case r.config.MustExist:
		return fmt.Errorf("directory does not exist: %s", dir)
	case r.config.ReadOnly:
		// Nothing to read yet; Load will report an empty collection.
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	r.config.Logger.Debug("created data directory", "path", dir)
	return nil
}

// Load reads and decodes the backing file.
//
// A missing or blank file is an empty collection. Undecodable contents are
// reported with an error wrapping core.ErrCorrupt.
func (r *Repository) Load(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if os.IsNotExist(err) {
		r.config.Logger.Debug("backing file not found, starting fresh", "path", r.Path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.Path, err)
	}
	r.recordDigest(data)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	notes, err := r.serializer.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrCorrupt, r.Path, err)
	}
	return notes, nil
}

// Save serializes notes and atomically replaces the backing file.
func (r *Repository) Save(ctx context.Context, notes []core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.serializer.Encode(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	// Record before writing so the watcher never mistakes this write for an external one.
	prev, hadPrev := r.recordDigest(data)
	if err := WriteFileAtomic(r.Path, data, r.config.Perm); err != nil {
		r.restoreDigest(prev, hadPrev)
		return err
	}

	r.mu.Lock()
	now := time.Now()
	r.lastSave = &now
	r.mu.Unlock()

	r.config.Logger.Debug("backing file written", "path", r.Path, "bytes", len(data), "format", r.serializer.Format())
	return nil
}

// Format returns the serializer name used for the backing file.
func (r *Repository) Format() string {
	return r.serializer.Format()
}

// recordDigest remembers data as our own content and returns the digest it replaced.
func (r *Repository) recordDigest(data []byte) (uint64, bool) {
	sum := xxhash.Sum64(data)

	r.mu.Lock()
	defer r.mu.Unlock()
	prev, hadPrev := r.lastDigest, r.hasDigest
	r.lastDigest = sum
	r.hasDigest = true
	return prev, hadPrev
}

func (r *Repository) restoreDigest(sum uint64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastDigest = sum
	r.hasDigest = ok
}

// isOwnContent reports whether data is exactly what this repository last read or wrote.
func (r *Repository) isOwnContent(data []byte) bool {
	sum := xxhash.Sum64(data)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasDigest && r.lastDigest == sum
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
