package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255"))

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
)

func (m *ListModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SCLRENAME — devices"))
	b.WriteString("\n")
	b.WriteString(m.searchBar.View())
	b.WriteString("\n")

	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(m.renderSelectedError())
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *ListModel) renderRows() string {
	items := m.session.Items()
	if len(m.visible) == 0 {
		if len(items) == 0 {
			return dimStyle.Render("  Inventory is empty.")
		}
		return dimStyle.Render("  No devices match the filter.")
	}

	nameWidth := 0
	for _, idx := range m.visible {
		if n := len(items[idx].Identity()); n > nameWidth {
			nameWidth = n
		}
	}

	first, last := m.rowWindow()

	var rows []string
	for pos := first; pos < last; pos++ {
		it := items[m.visible[pos]]

		marker := " "
		switch {
		case !it.Valid():
			marker = invalidStyle.Render("✗")
		case it.Dirty():
			marker = dirtyStyle.Render("●")
		}

		name := fmt.Sprintf("%-*s", nameWidth, it.Identity())
		proposed := ""
		if m.editing && it.Identity() == m.editIdentity {
			proposed = "→ " + m.editInput.View()
		} else if it.Dirty() {
			style := dirtyStyle
			if !it.Valid() {
				style = invalidStyle
			}
			proposed = style.Render("→ " + it.Current)
		} else if !it.Valid() {
			proposed = invalidStyle.Render("(" + it.Reason.Message() + ")")
		}

		meta := dimStyle.Render(deviceMeta(it.Device.Manufacturer, it.Device.Type, it.Device.Desc, m.width))

		row := fmt.Sprintf("  %s %s  %s  %s", marker, name, proposed, meta)
		if pos == m.cursor && !m.editing {
			row = selectedStyle.Render("▸" + row[1:])
		}
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

// rowWindow returns the half-open range of visible rows to draw,
// keeping the cursor on screen when the list is taller than the
// window.
func (m *ListModel) rowWindow() (int, int) {
	max := m.height - 9 // title, search bar, error line, footer
	if max < 3 {
		max = 3
	}
	if len(m.visible) <= max {
		return 0, len(m.visible)
	}

	first := m.cursor - max/2
	if first < 0 {
		first = 0
	}
	last := first + max
	if last > len(m.visible) {
		last = len(m.visible)
		first = last - max
	}
	return first, last
}

func (m *ListModel) renderSelectedError() string {
	it := m.selectedItem()
	if it == nil || it.Valid() {
		return "\n"
	}
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return invalidStyle.Padding(0, 1).Render(wordwrap.String(it.Reason.Message(), width)) + "\n"
}

func (m *ListModel) renderFooter() string {
	pending := m.session.DirtyCount()

	var state string
	switch {
	case !m.session.AllValid():
		state = invalidStyle.Render(fmt.Sprintf("%d pending · invalid names block commit", pending))
	case pending > 0:
		state = dirtyStyle.Render(fmt.Sprintf("%d pending · ready to commit", pending))
	default:
		state = dimStyle.Render("no pending renames")
	}

	help := "↑/↓ navigate · / filter · enter edit · r revert · R revert all · c commit · y copy plan · q quit"
	if m.editing {
		help = "enter accept · esc abort edit"
	} else if m.searchBar.Active() {
		help = "enter/esc leave filter"
	}

	width := m.width - 2
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(state) + "\n" +
		helpStyle.Render(wordwrap.String(help, width))
}

// deviceMeta joins the descriptive fields for the row's right-hand
// column, truncated to fit.
func deviceMeta(manufacturer, devType, desc string, width int) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{manufacturer, devType, desc} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	meta := strings.Join(parts, " · ")

	max := width / 2
	if max < 16 {
		max = 16
	}
	if len(meta) > max {
		meta = meta[:max-1] + "…"
	}
	return meta
}
