package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notepad/pkg/core"
)

// eventBuffer is the capacity of the channel returned by Watch.
const eventBuffer = 16

// Watch reports changes made to the backing file by other writers.
//
// The parent directory is watched rather than the file itself because every
// save replaces the file through a rename. Bursts of events are debounced,
// and a change whose content equals what this repository last read or wrote
// is dropped.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(r.Path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(r.Path), err)
	}

	events := make(chan core.Event, eventBuffer)
	w := &watchWorker{
		repo:    r,
		watcher: watcher,
		events:  events,
		delay:   r.config.Debounce,
	}

	r.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(fmt.Errorf("watcher panic: %w", err))
		} else {
			r.config.Logger.Error("watcher panic", "error", err)
		}
	}))

	return events, nil
}

type watchWorker struct {
	repo    *Repository
	watcher *fsnotify.Watcher
	events  chan<- core.Event
	delay   time.Duration
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.repo.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.repo.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.repo.config.Logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.repo.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			e, ok := w.inspect()
			if !ok {
				continue
			}
			select {
			case w.events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.config.Logger.Error("fsnotify error", "error", wErr)
			if w.repo.config.ErrorHandler != nil {
				w.repo.config.ErrorHandler(wErr)
			}
		}
	}
}

// relevant keeps content-changing events on the backing file only.
// Temp files of atomic writes live in the same directory and are ignored.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.repo.Path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// inspect turns the settled state of the backing file into an event.
func (w *watchWorker) inspect() (core.Event, bool) {
	data, err := os.ReadFile(w.repo.Path)
	if os.IsNotExist(err) {
		return core.NewEvent(core.EventDelete, w.repo.Path), true
	}
	if err != nil {
		w.repo.config.Logger.Debug("backing file unreadable after change", "path", w.repo.Path, "error", err)
		return core.Event{}, false
	}
	if w.repo.isOwnContent(data) {
		w.repo.config.Logger.Debug("ignoring own write", "path", w.repo.Path)
		return core.Event{}, false
	}
	return core.NewEvent(core.EventModify, w.repo.Path), true
}
