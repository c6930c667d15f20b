package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notepad/pkg/core"
)

// Run starts the terminal UI and blocks until the user quits or ctx is done.
// When the repository supports it, external changes are picked up live.
func Run(ctx context.Context, svc *core.Service, opts ...Option) error {
	m := New(svc, append([]Option{WithContext(ctx)}, opts...)...)

	events, err := svc.Watch(ctx)
	switch {
	case errors.Is(err, core.ErrWatchUnsupported):
		m.logger.Debug("backing store cannot be watched")
	case err != nil:
		m.logger.Warn("watch failed, external changes will not show up", "error", err)
	default:
		m.events = events
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
