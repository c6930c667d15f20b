package core

import (
	"context"
	"fmt"
	"time"
)

// Repository defines the contract for the backing store of the note collection.
// The collection is always read and written as a whole; adapters never see
// individual mutations.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g., create directories, schema migration).
	Initialize(ctx context.Context) error

	// Load returns the stored collection in order.
	// It returns (nil, nil) when nothing has been stored yet and an error
	// wrapping ErrCorrupt when the stored data cannot be decoded.
	Load(ctx context.Context) ([]Note, error)

	// Save replaces the stored collection with notes.
	Save(ctx context.Context, notes []Note) error
}

// Watchable defines an interface for repositories that can report changes
// made to the backing store by someone else.
type Watchable interface {
	// Watch emits an Event every time the backing store changes outside of
	// this repository's own writes. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

// EventType represents the type of change in the backing store.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the backing store.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// NewEvent stamps an event with the current time.
func NewEvent(t EventType, path string) Event {
	return Event{Type: t, Path: path, Timestamp: time.Now().Unix()}
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
