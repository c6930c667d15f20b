package fs

import (
	"os"
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	Format        string     `json:"format"`
	Exists        bool       `json:"exists"`
	Size          int64      `json:"size"`
	ReadOnly      bool       `json:"read_only"`
	WatcherActive bool       `json:"watcher_active"`
	LastSave      *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := RepositoryState{
		Path:          r.Path,
		Format:        r.serializer.Format(),
		ReadOnly:      r.config.ReadOnly,
		WatcherActive: r.watcherActive,
		LastSave:      r.lastSave,
	}
	if info, err := os.Stat(r.Path); err == nil {
		state.Exists = true
		state.Size = info.Size()
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
