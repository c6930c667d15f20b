package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// noSelection marks the absence of a selected note.
const noSelection = -1

// Service holds the authoritative, ordered note collection and keeps the
// backing repository synchronized with every change.
//
// Every mutation rewrites the whole collection through Repository.Save.
// A failed save never rolls back the in-memory change; the error is logged
// and returned wrapped in ErrPersist.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	now      func() time.Time
	readOnly bool

	mu       sync.RWMutex
	notes    []Note
	selected int
	loadErr  error
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used for load and save failures.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the clock used to stamp new notes.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithServiceReadOnly rejects every mutation with ErrReadOnly.
func WithServiceReadOnly(enabled bool) ServiceOption {
	return func(s *Service) {
		s.readOnly = enabled
	}
}

// NewService creates a new Service. The collection starts empty until Load is called.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		now:      time.Now,
		selected: noSelection,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Load replaces the collection with the repository contents.
//
// A missing backing store yields an empty collection. An unreadable or
// undecodable one also yields an empty collection: the error is returned and
// kept in LoadErr, but the service stays usable.
func (s *Service) Load(ctx context.Context) error {
	notes, err := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = noSelection
	return s.replace(notes, err)
}

// Reload re-reads the repository after an external change.
// The selection survives when it is still in range.
func (s *Service) Reload(ctx context.Context) error {
	notes, err := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	selected := s.selected
	err = s.replace(notes, err)
	if selected == noSelection || selected >= len(s.notes) {
		s.selected = noSelection
	}
	return err
}

// replace swaps in a freshly loaded collection. Callers hold s.mu.
func (s *Service) replace(notes []Note, err error) error {
	s.loadErr = err
	if err != nil {
		s.notes = nil
		s.logger.Warn("notes unreadable, starting with an empty collection", "error", err)
		return err
	}

	s.notes = renumber(notes)
	s.logger.Debug("notes loaded", "count", len(s.notes))
	return nil
}

// LoadErr returns the error of the last Load, if any.
func (s *Service) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Create appends a new note and selects it.
// An empty title is rejected with ErrEmptyTitle and leaves the collection untouched.
func (s *Service) Create(ctx context.Context, title, content string) (int, error) {
	if title == "" {
		return noSelection, ErrEmptyTitle
	}
	if s.readOnly {
		return noSelection, ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := len(s.notes)
	s.notes = append(s.notes, Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: FormatTimestamp(s.now()),
	})
	s.selected = id

	return id, s.persist(ctx)
}

// Import appends notes in order with fresh positional IDs and persists once.
// Notes without a title are skipped; a missing CreatedAt is stamped with the current time.
// It returns the number of notes added.
func (s *Service) Import(ctx context.Context, notes []Note) (int, error) {
	if s.readOnly {
		return 0, ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, n := range notes {
		if n.Title == "" {
			s.logger.Debug("skipping untitled note on import")
			continue
		}
		n.ID = len(s.notes)
		if n.CreatedAt == "" {
			n.CreatedAt = FormatTimestamp(s.now())
		}
		s.notes = append(s.notes, n)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	return added, s.persist(ctx)
}

// Delete removes the note with the given ID and renumbers the rest.
//
// A selection pointing at the deleted note is cleared; one pointing at a
// later note follows it to its new ID.
func (s *Service) Delete(ctx context.Context, id int) error {
	if s.readOnly {
		return ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	s.notes = renumber(slices.Delete(s.notes, idx, idx+1))

	switch {
	case s.selected == id:
		s.selected = noSelection
	case s.selected > id:
		s.selected--
	}

	return s.persist(ctx)
}

// Update replaces the content of the note with the given ID.
// Title and CreatedAt are never changed.
func (s *Service) Update(ctx context.Context, id int, content string) error {
	if s.readOnly {
		return ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	s.notes[idx].Content = content
	return s.persist(ctx)
}

// Filter returns the notes whose title or content contains query,
// ignoring case. An empty query returns every note. Order is preserved.
func (s *Service) Filter(query string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return slices.Clone(s.notes)
	}

	needle := strings.ToLower(query)
	var out []Note
	for _, n := range s.notes {
		if n.matches(needle) {
			out = append(out, n)
		}
	}
	return out
}

// Notes returns a copy of the whole collection.
func (s *Service) Notes() []Note {
	return s.Filter("")
}

// Len returns the number of notes.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Get returns a copy of the note with the given ID.
func (s *Service) Get(id int) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Note{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s.notes[idx], nil
}

// Select marks the note with the given ID as selected.
// It reports false, leaving the selection unchanged, when no such note exists.
func (s *Service) Select(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return false
	}
	s.selected = id
	return true
}

// ClearSelection deselects any note.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = noSelection
}

// Selected returns the selected note, if any.
func (s *Service) Selected() (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(s.selected)
	if idx < 0 {
		return Note{}, false
	}
	return s.notes[idx], true
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

// Close releases the repository when it holds resources.
func (s *Service) Close() error {
	if c, ok := s.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// persist writes the whole collection. Callers must hold s.mu.
func (s *Service) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, slices.Clone(s.notes)); err != nil {
		s.logger.Error("failed to save notes", "count", len(s.notes), "error", err)
		if errors.Is(err, ErrReadOnly) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.logger.Debug("notes saved", "count", len(s.notes))
	return nil
}

// indexOf returns the position of the note with the given ID, or -1.
func (s *Service) indexOf(id int) int {
	if id < 0 {
		return -1
	}
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// renumber assigns every note its position as ID.
func renumber(notes []Note) []Note {
	for i := range notes {
		notes[i].ID = i
	}
	return notes
}
