package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notepad/pkg/core"
)

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit

	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.selectCurrent()
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.selectCurrent()
		}

	case "g", "home":
		m.cursor = 0
		m.selectCurrent()

	case "G", "end":
		m.cursor = len(m.visible) - 1
		m.clampCursor()
		m.selectCurrent()

	case "/":
		m.mode = modeSearch
		return m.search.Focus()

	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refresh()
		}

	case "n":
		return m.startNew()

	case "enter", "e":
		return m.startEdit()

	case "d":
		m.deleteCurrent()

	case "y":
		m.copyCurrent()
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeList
		m.refresh()
		return nil

	case "enter":
		m.search.Blur()
		m.mode = modeList
		m.selectCurrent()
		return nil

	case "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return nil

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		// The filter is recomputed from scratch on every change.
		m.visible = m.svc.Filter(m.search.Value())
		m.cursor = 0
	}
	return cmd
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.editor.Blur()
		m.mode = modeList
		m.refresh()
		return nil

	case "ctrl+s":
		m.saveEditor(true)
		return nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.saveEditor(false)
	}
	return cmd
}

func (m *Model) handleNewKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.title.Blur()
		m.editor.Blur()
		m.mode = modeList
		m.setStatus("")
		return nil

	case "tab":
		m.newFocusTitle = !m.newFocusTitle
		if m.newFocusTitle {
			m.editor.Blur()
			return m.title.Focus()
		}
		m.title.Blur()
		return m.editor.Focus()

	case "ctrl+s":
		m.createFromForm()
		return nil
	}

	var cmd tea.Cmd
	if m.newFocusTitle {
		if msg.String() == "enter" {
			m.newFocusTitle = false
			m.title.Blur()
			return m.editor.Focus()
		}
		m.title, cmd = m.title.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	return cmd
}

func (m *Model) startNew() tea.Cmd {
	m.mode = modeNew
	m.title.SetValue("")
	m.editor.SetValue("")
	m.editor.Blur()
	m.newFocusTitle = true
	m.setStatus("")
	return m.title.Focus()
}

func (m *Model) startEdit() tea.Cmd {
	note, ok := m.current()
	if !ok {
		return nil
	}
	m.svc.Select(note.ID)
	m.editor.SetValue(note.Content)
	m.mode = modeEdit
	m.setStatus("")
	return m.editor.Focus()
}

// createFromForm creates a note from the new-note form. An empty title keeps
// the form open.
func (m *Model) createFromForm() {
	id, err := m.svc.Create(m.ctx, m.title.Value(), m.editor.Value())
	switch {
	case errors.Is(err, core.ErrEmptyTitle):
		m.setError("a note needs a title")
		return
	case errors.Is(err, core.ErrReadOnly):
		m.setError("read-only: note not created")
		return
	case err != nil:
		// The note exists in memory even when the write failed.
		m.setError("saved in memory only: " + err.Error())
	default:
		m.setStatus(fmt.Sprintf("created note %d", id))
	}

	m.title.Blur()
	m.editor.Blur()
	m.search.SetValue("")
	m.mode = modeList
	m.refresh()
}

// saveEditor writes the editor content to the selected note.
func (m *Model) saveEditor(explicit bool) {
	note, ok := m.svc.Selected()
	if !ok {
		m.setError("no note selected")
		return
	}
	if err := m.svc.Update(m.ctx, note.ID, m.editor.Value()); err != nil {
		m.setError("save failed: " + err.Error())
		return
	}
	if explicit {
		m.setStatus("saved")
	}
	m.refresh()
}

func (m *Model) deleteCurrent() {
	note, ok := m.current()
	if !ok {
		return
	}
	err := m.svc.Delete(m.ctx, note.ID)
	switch {
	case errors.Is(err, core.ErrPersist):
		m.setError("deleted in memory only: " + err.Error())
	case err != nil:
		m.setError("delete failed: " + err.Error())
		return
	default:
		m.setStatus(fmt.Sprintf("deleted %q", note.Title))
	}
	m.refresh()
}

func (m *Model) copyCurrent() {
	note, ok := m.current()
	if !ok {
		return
	}
	if err := m.copyFn(note.Content); err != nil {
		m.setError("copy failed: " + err.Error())
		return
	}
	m.setStatus("copied note content")
}
