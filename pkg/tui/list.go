package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/sclrename/sclrename-cli/pkg/files"
	"github.com/sclrename/sclrename-cli/pkg/models"
	"github.com/sclrename/sclrename-cli/pkg/query"
	"github.com/sclrename/sclrename-cli/pkg/rename"
)

// searchTickMsg fires after the search debounce window. Only the
// message carrying the latest version is applied; earlier pending
// ones are dropped on arrival.
type searchTickMsg struct {
	version int
}

// commitResultMsg reports the outcome of applying renames to the
// inventory.
type commitResultMsg struct {
	applied int
	err     error
}

// ListModel is the batch-rename view: the filterable device list with
// inline name editing.
type ListModel struct {
	session  *rename.Session
	invPath  string
	debounce time.Duration

	searchBar     *SearchBar
	matcher       *query.Matcher
	searchVersion int

	visible []int // indices into session.Items(), in display order
	cursor  int   // index into visible

	editing      bool
	editInput    textinput.Model
	editIdentity string
	editStart    string

	width  int
	height int
}

// NewListModel loads settings and the inventory and builds the list.
func NewListModel() (*ListModel, error) {
	settings, err := files.ReadSettings()
	if err != nil {
		return nil, err
	}
	invPath := files.ResolveInventoryPath("", settings)

	devices, err := files.LoadInventory(invPath)
	if err != nil {
		return nil, err
	}

	debounce := time.Duration(settings.UI.SearchDebounceMs) * time.Millisecond
	return newListModel(devices, invPath, debounce), nil
}

// newListModel builds the list from already-loaded devices.
func newListModel(devices []models.Device, invPath string, debounce time.Duration) *ListModel {
	// Display order follows the concatenated descriptive-field text;
	// it never affects validation or search.
	sorted := make([]models.Device, len(devices))
	copy(sorted, devices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortKey() < sorted[j].SortKey()
	})

	ti := textinput.New()
	ti.CharLimit = rename.MaxNameLength + 10 // let over-long input in so the length rule can report it

	m := &ListModel{
		session:   rename.NewSession(sorted),
		invPath:   invPath,
		debounce:  debounce,
		searchBar: NewSearchBar(),
		matcher:   query.Compile(""),
		editInput: ti,
	}
	m.applyFilter()
	return m
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the layout dimensions.
func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchBar.SetWidth(width)
	m.editInput.Width = width / 3
}

func (m *ListModel) Update(msg tea.Msg) (*ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchTickMsg:
		// Stale compiles must never be visible.
		if msg.version != m.searchVersion {
			return m, nil
		}
		m.matcher = query.Compile(m.searchBar.Value())
		m.applyFilter()
		return m, nil

	case commitResultMsg:
		if msg.err != nil {
			return m, statusCmd(fmt.Sprintf("Rename failed: %v", msg.err))
		}
		if err := m.reload(); err != nil {
			return m, statusCmd(fmt.Sprintf("Renamed %d device(s), but reload failed: %v", msg.applied, err))
		}
		return m, statusCmd(fmt.Sprintf("Renamed %d device(s)", msg.applied))

	case tea.KeyMsg:
		switch {
		case m.editing:
			return m.updateEditing(msg)
		case m.searchBar.Active():
			return m.updateSearching(msg)
		default:
			return m.updateBrowsing(msg)
		}
	}

	return m, nil
}

func (m *ListModel) updateSearching(msg tea.KeyMsg) (*ListModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchBar.SetActive(false)
		return m, nil
	case "enter", "down":
		m.searchBar.SetActive(false)
		return m, nil
	}

	before := m.searchBar.Value()
	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)

	if m.searchBar.Value() != before {
		m.searchVersion++
		version := m.searchVersion
		tick := tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return searchTickMsg{version: version}
		})
		return m, tea.Batch(cmd, tick)
	}
	return m, cmd
}

func (m *ListModel) updateEditing(msg tea.KeyMsg) (*ListModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Abort the edit: restore the value the edit started from.
		m.session.SetCurrentValue(m.editIdentity, m.editStart)
		m.stopEditing()
		return m, nil
	case "enter":
		// Accept. The value is already applied; an invalid name stays
		// visible in the list and blocks commit until fixed.
		m.stopEditing()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.session.SetCurrentValue(m.editIdentity, m.editInput.Value())
	return m, cmd
}

func (m *ListModel) updateBrowsing(msg tea.KeyMsg) (*ListModel, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case "/":
		m.searchBar.SetActive(true)

	case "enter", "e":
		if it := m.selectedItem(); it != nil {
			m.startEditing(it)
		}

	case "r":
		if it := m.selectedItem(); it != nil {
			m.session.Revert(it.Identity())
			m.applyFilter()
		}

	case "R":
		m.session.Reset()
		m.applyFilter()
		return m, statusCmd("All edits discarded")

	case "c":
		return m, m.commitCmd()

	case "y":
		return m, m.copyPlanCmd()
	}

	return m, nil
}

func (m *ListModel) startEditing(it *rename.Item) {
	m.editing = true
	m.editIdentity = it.Identity()
	m.editStart = it.Current
	m.editInput.SetValue(it.Current)
	m.editInput.CursorEnd()
	m.editInput.Focus()
}

func (m *ListModel) stopEditing() {
	m.editing = false
	m.editIdentity = ""
	m.editStart = ""
	m.editInput.Blur()
	// Edits change the searchable text, so the filter is re-applied
	// once the edit ends, never mid-keystroke.
	m.applyFilter()
}

// applyFilter recomputes which items are visible under the current
// matcher. Visibility is independent of validity.
func (m *ListModel) applyFilter() {
	m.visible = m.visible[:0]
	for i, it := range m.session.Items() {
		if m.matcher.Test(it.SearchText()) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ListModel) selectedItem() *rename.Item {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.session.Items()[m.visible[m.cursor]]
}

func (m *ListModel) commitCmd() tea.Cmd {
	if !m.session.IsCommittable() {
		if m.session.DirtyCount() == 0 {
			return statusCmd("Nothing to commit")
		}
		return statusCmd("Cannot commit: fix invalid names first")
	}

	renames, err := m.session.Commit()
	if err != nil {
		return statusCmd(err.Error())
	}

	path := m.invPath
	return func() tea.Msg {
		if err := files.ApplyRenames(path, renames); err != nil {
			return commitResultMsg{err: err}
		}
		return commitResultMsg{applied: len(renames)}
	}
}

func (m *ListModel) copyPlanCmd() tea.Cmd {
	renames := m.session.PendingRenames()
	if len(renames) == 0 {
		return statusCmd("No pending renames to copy")
	}

	data, err := yaml.Marshal(renames)
	if err != nil {
		return statusCmd(fmt.Sprintf("Failed to format plan: %v", err))
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return statusCmd(fmt.Sprintf("Failed to copy plan: %v", err))
	}
	return statusCmd(fmt.Sprintf("Copied %d rename(s) to clipboard", len(renames)))
}

// reload re-reads the inventory and starts a fresh session.
func (m *ListModel) reload() error {
	devices, err := files.LoadInventory(m.invPath)
	if err != nil {
		return err
	}
	sort.SliceStable(devices, func(i, j int) bool {
		return devices[i].SortKey() < devices[j].SortKey()
	})
	m.session = rename.NewSession(devices)
	m.applyFilter()
	return nil
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(text)
	}
}
