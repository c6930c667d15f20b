// Package tui is the terminal front end: a searchable note list beside an
// editor pane. It keeps no note state of its own; every action goes through
// core.Service and the view is rebuilt from it.
package tui

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notepad/pkg/core"
)

// mode is the interaction state of the model.
type mode int

const (
	modeList mode = iota
	modeSearch
	modeEdit
	modeNew
)

func (m mode) String() string {
	switch m {
	case modeSearch:
		return "SEARCH"
	case modeEdit:
		return "EDIT"
	case modeNew:
		return "NEW"
	default:
		return "LIST"
	}
}

const sidebarWidth = 32

// storeEventMsg reports a change of the backing store made by another program.
type storeEventMsg struct{ event core.Event }

// Model implements tea.Model.
type Model struct {
	svc    *core.Service
	logger *slog.Logger
	copyFn func(string) error
	events <-chan core.Event
	ctx    context.Context

	width  int
	height int
	mode   mode

	// visible is the filtered list shown in the sidebar; cursor indexes it.
	visible []core.Note
	cursor  int

	search textinput.Model
	title  textinput.Model
	editor textarea.Model

	// newFocusTitle tracks which field of the new-note form has focus.
	newFocusTitle bool

	status    string
	statusErr bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards everything, since the
// terminal belongs to the UI while it runs.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		m.copyFn = fn
	}
}

// WithEvents feeds backing-store change events into the model.
func WithEvents(events <-chan core.Event) Option {
	return func(m *Model) {
		m.events = events
	}
}

// WithContext sets the context used for store operations.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// New creates the model for svc.
func New(svc *core.Service, opts ...Option) *Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"

	title := textinput.New()
	title.Prompt = "Title: "
	title.Placeholder = "required"

	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Placeholder = "Write your note..."

	m := &Model{
		svc:    svc,
		copyFn: clipboard.WriteAll,
		ctx:    context.Background(),
		search: search,
		title:  title,
		editor: editor,
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}

	m.refresh()
	if err := svc.LoadErr(); err != nil {
		m.setError("could not read notes, starting empty: " + err.Error())
	}
	m.resize()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case storeEventMsg:
		m.handleStoreEvent(msg.event)
		return m, m.waitForEvent()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m, m.handleSearchKey(msg)
		case modeEdit:
			return m, m.handleEditKey(msg)
		case modeNew:
			return m, m.handleNewKey(msg)
		default:
			return m, m.handleListKey(msg)
		}
	}

	return m, nil
}

// waitForEvent blocks on the next store event. It returns nil when there is
// nothing to watch, which bubbletea treats as no command.
func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg{event: event}
	}
}

func (m *Model) handleStoreEvent(event core.Event) {
	m.logger.Debug("backing store changed", "event", event.String())

	// Unsaved keystrokes are not lost: edits persist as they happen.
	if err := m.svc.Reload(m.ctx); err != nil {
		m.setError("reload failed: " + err.Error())
	} else {
		m.setStatus("reloaded after external change")
	}
	m.refresh()

	if m.mode == modeEdit {
		note, ok := m.svc.Selected()
		if !ok {
			m.mode = modeList
			m.editor.Blur()
			return
		}
		if note.Content != m.editor.Value() {
			m.editor.SetValue(note.Content)
		}
	}
}

// refresh rebuilds the visible list from the store and puts the cursor on
// the selected note when it is visible.
func (m *Model) refresh() {
	m.visible = m.svc.Filter(m.search.Value())

	if note, ok := m.svc.Selected(); ok {
		for i, n := range m.visible {
			if n.ID == note.ID {
				m.cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// current returns the note under the cursor.
func (m *Model) current() (core.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return core.Note{}, false
	}
	return m.visible[m.cursor], true
}

// selectCurrent mirrors the cursor into the store selection.
func (m *Model) selectCurrent() {
	if note, ok := m.current(); ok {
		m.svc.Select(note.ID)
	} else {
		m.svc.ClearSelection()
	}
}

func (m *Model) resize() {
	mainWidth := m.width - sidebarWidth - 3
	if mainWidth < 20 {
		mainWidth = 20
	}
	bodyHeight := m.height - 6
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	m.search.Width = sidebarWidth - 4
	m.title.Width = mainWidth - len(m.title.Prompt) - 1
	m.editor.SetWidth(mainWidth)
	m.editor.SetHeight(bodyHeight)
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
	m.logger.Warn(s)
}
