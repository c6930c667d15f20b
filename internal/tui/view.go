package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	primary   = lipgloss.Color("63")
	muted     = lipgloss.Color("242")
	errorTint = lipgloss.Color("203")

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(muted).
			PaddingRight(1)

	itemStyle     = lipgloss.NewStyle()
	selectedStyle = lipgloss.NewStyle().Foreground(primary).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(muted)
	errorStyle    = lipgloss.NewStyle().Foreground(errorTint)
	modeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(primary).Padding(0, 1)
)

// View implements tea.Model.
func (m *Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), " ", m.viewMain())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewFooter())
}

func (m *Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	listHeight := m.height - 5
	if listHeight < 1 {
		listHeight = 1
	}

	if len(m.visible) == 0 {
		if m.search.Value() != "" {
			b.WriteString(dimStyle.Render("no matches"))
		} else {
			b.WriteString(dimStyle.Render("no notes yet, press n"))
		}
	}

	// Keep the cursor on screen.
	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := min(start+listHeight, len(m.visible))

	for i := start; i < end; i++ {
		line := truncate(m.visible[i].Title, sidebarWidth-3)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return sidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(b.String())
}

func (m *Model) viewMain() string {
	switch m.mode {
	case modeNew:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New note"),
			m.title.View(),
			"",
			m.editor.View(),
		)

	case modeEdit:
		note, ok := m.svc.Selected()
		if !ok {
			return dimStyle.Render("no note selected")
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(note.Title),
			dimStyle.Render("Created: "+note.CreatedAt),
			"",
			m.editor.View(),
		)
	}

	note, ok := m.current()
	if !ok {
		return dimStyle.Render("Select a note or create a new one.")
	}

	width := m.width - sidebarWidth - 3
	content := note.Content
	if content == "" {
		content = dimStyle.Render("(empty)")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(note.Title),
		dimStyle.Render("Created: "+note.CreatedAt),
		"",
		lipgloss.NewStyle().Width(max(width, 20)).Render(content),
	)
}

func (m *Model) viewFooter() string {
	var help string
	switch m.mode {
	case modeSearch:
		help = "type to filter  enter keep  esc clear"
	case modeEdit:
		help = "ctrl+s save  esc back"
	case modeNew:
		help = "tab switch field  ctrl+s create  esc cancel"
	default:
		help = "/ search  n new  enter edit  d delete  y copy  q quit"
	}

	left := modeStyle.Render(m.mode.String()) + " " + dimStyle.Render(fmt.Sprintf("%d notes", m.svc.Len()))
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render(m.status)
		} else {
			status = m.status
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", status, "  ", dimStyle.Render(help))
}

// truncate shortens s to width terminal cells, counting wide runes.
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "…")
}
