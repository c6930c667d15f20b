// Package sqlite stores the note collection in a single SQLite table.
//
// It keeps the whole-collection contract of core.Repository: every Save
// replaces all rows inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/aretw0/introspection"

	"github.com/aretw0/notepad/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    position   INTEGER PRIMARY KEY,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
}

// Repository implements core.Repository using SQLite.
type Repository struct {
	Path   string
	config Config

	mu sync.Mutex
	db *sql.DB
}

// NewRepository creates a repository. No I/O happens until Initialize.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{Path: config.Path, config: config}
}

// Initialize opens the database and creates the schema if needed.
// In read-only mode a missing database is left alone and loads as empty.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return nil
	}

	_, statErr := os.Stat(r.Path)
	missing := os.IsNotExist(statErr)
	if missing && r.config.ReadOnly {
		return nil
	}
	if missing && r.config.MustExist {
		return fmt.Errorf("database does not exist: %s", r.Path)
	}
	if missing {
		if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", r.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// One connection keeps pragmas and transactions on the same handle.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("configure database: %w", err)
	}
	if !r.config.ReadOnly {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			db.Close()
			return fmt.Errorf("init schema: %w", err)
		}
	}

	r.db = db
	r.config.Logger.Debug("sqlite database ready", "path", r.Path)
	return nil
}

// Load returns all rows ordered by position.
func (r *Repository) Load(ctx context.Context) ([]core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT position, title, content, created_at
		FROM notes
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query notes: %w", core.ErrCorrupt, err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var n core.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan note: %w", core.ErrCorrupt, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrCorrupt, err)
	}
	return notes, nil
}

// Save replaces every row with notes in a single transaction.
func (r *Repository) Save(ctx context.Context, notes []core.Note) (err error) {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return errors.New("sqlite repository is not initialized")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM notes"); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notes (position, title, content, created_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range notes {
		if _, err = stmt.ExecContext(ctx, i, n.Title, n.Content, n.CreatedAt); err != nil {
			return fmt.Errorf("insert note %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.config.Logger.Debug("sqlite notes written", "count", len(notes))
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path     string `json:"path"`
	Open     bool   `json:"open"`
	ReadOnly bool   `json:"read_only"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RepositoryState{Path: r.Path, Open: r.db != nil, ReadOnly: r.config.ReadOnly}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite-repository"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
