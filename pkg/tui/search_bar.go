package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar is the filter input above the device list.
type SearchBar struct {
	input    textinput.Model
	isActive bool
	width    int
}

// NewSearchBar creates a new search bar component
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Filter devices... (* and ? globs, \"quoted phrases\")"
	ti.CharLimit = 100
	ti.Width = 50

	return &SearchBar{
		input: ti,
	}
}

// SetActive sets whether the search bar has input focus
func (s *SearchBar) SetActive(active bool) {
	s.isActive = active
	if active {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
}

// Active reports whether the search bar has input focus
func (s *SearchBar) Active() bool {
	return s.isActive
}

// SetWidth sets the width for the search bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// Account for borders, padding, and the icon
	s.input.Width = width - 12
}

// Value returns the current search text
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// Reset clears the search input
func (s *SearchBar) Reset() {
	s.input.SetValue("")
}

// Update handles tea messages for the search bar
func (s *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the search bar
func (s *SearchBar) View() string {
	borderColor := "240"
	if s.isActive {
		borderColor = "170"
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(s.width - 4).
		Padding(0, 1)

	var icon string
	if s.isActive {
		icon = lipgloss.NewStyle().
			Background(lipgloss.Color("170")).
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 1).
			Render("⌕")
	} else {
		icon = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Bold(true).
			Render(" ⌕ ")
	}

	content := lipgloss.JoinHorizontal(lipgloss.Center, icon, " ", s.input.View())

	return lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Render(searchStyle.Render(content))
}
