package notepad

import (
	"log/slog"
	"time"

	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/core"
)

// --- Types ---

// Note is a public alias for the note entity.
type Note = core.Note

// Service is a public alias for the note store.
type Service = core.Service

// Repository is a public alias for the storage port.
type Repository = core.Repository

// Errors reported by the note store. Match them with errors.Is.
var (
	ErrNotFound   = core.ErrNotFound
	ErrEmptyTitle = core.ErrEmptyTitle
	ErrCorrupt    = core.ErrCorrupt
	ErrPersist    = core.ErrPersist
	ErrReadOnly   = core.ErrReadOnly
)

// --- Configuration ---

// Option defines a functional option for configuring the note store.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for the service and its repository.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithReadOnly rejects every change with ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist fails Open when the data location does not exist yet.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the data file into the dev sandbox directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used when running via `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithClock overrides the clock used to stamp new notes.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open prepares the backing store at path and loads the notes.
// An empty path selects ~/.note_app_data.json.
func Open(path string, opts ...Option) (*core.Service, error) {
	return platform.Open(path, opts...)
}

// Init initializes a repository explicitly, without loading it.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Safety & Utils ---

// DefaultDataFile returns the backing file used when no path is given.
func DefaultDataFile() string {
	return platform.DefaultDataFile()
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
