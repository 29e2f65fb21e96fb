package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// App is the root model. It owns the window size, the status bar, and
// the device list view.
type App struct {
	list      *ListModel
	width     int
	height    int
	statusMsg string
}

// NewApp loads the inventory and builds the root model.
func NewApp() (*App, error) {
	list, err := NewListModel()
	if err != nil {
		return nil, err
	}
	return &App{list: list}, nil
}

func (a *App) Init() tea.Cmd {
	return a.list.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		// Any key clears a stale status line.
		a.statusMsg = ""

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	content := a.list.View()

	if a.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

		content = lipgloss.JoinVertical(lipgloss.Top, content, statusStyle.Render(a.statusMsg))
	}

	return content
}

// StatusMsg updates the status bar at the bottom of the screen.
type StatusMsg string
