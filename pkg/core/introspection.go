package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Notes          int    `json:"notes"`
	Selected       *int   `json:"selected,omitempty"`
	ReadOnly       bool   `json:"read_only"`
	LoadError      string `json:"load_error,omitempty"`
	RepositoryType string `json:"repository_type"`
	Repository     any    `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := ServiceState{
		Notes:          len(s.notes),
		ReadOnly:       s.readOnly,
		RepositoryType: "unknown",
	}
	if s.selected != noSelection {
		selected := s.selected
		state.Selected = &selected
	}
	if s.loadErr != nil {
		state.LoadError = s.loadErr.Error()
	}

	if s.repo != nil {
		state.RepositoryType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			state.RepositoryType = comp.ComponentType()
		}
		if intro, ok := s.repo.(introspection.Introspectable); ok {
			state.Repository = intro.State()
		}
	}

	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
