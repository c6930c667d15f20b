// Package lifecycle turns backing-store changes into lifecycle events.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notepad/pkg/core"
)

// Store is the part of core.Service the source needs.
type Store interface {
	Watch(ctx context.Context) (<-chan core.Event, error)
	Reload(ctx context.Context) error
	Len() int
}

// Change is emitted after the store has been reloaded for a backing-store event.
type Change struct {
	core.Event
	// Notes is the collection size after the reload.
	Notes int
	// Err is the reload failure, if any. The store is then empty.
	Err error
}

func (c Change) String() string {
	if c.Err != nil {
		return fmt.Sprintf("%s (unreadable: %v)", c.Event, c.Err)
	}
	return fmt.Sprintf("%s (%d notes)", c.Event, c.Notes)
}

type changeSource struct {
	store Store
	out   chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that reloads store on every external
// change and emits a Change describing the result.
func NewSource(store Store) lifecycle.Source {
	return &changeSource{
		store: store,
		out:   make(chan lifecycle.Event),
	}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start subscribes to the store. Watch errors, such as core.ErrWatchUnsupported,
// are returned directly. The event channel closes when the store stops
// watching or ctx is done.
func (s *changeSource) Start(ctx context.Context) error {
	events, err := s.store.Watch(ctx)
	if err != nil {
		close(s.out)
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				change := Change{Event: e}
				if change.Err = s.store.Reload(ctx); change.Err == nil {
					change.Notes = s.store.Len()
				}
				select {
				case s.out <- change:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
