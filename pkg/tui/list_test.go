package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sclrename/sclrename-cli/pkg/files"
	"github.com/sclrename/sclrename-cli/pkg/models"
)

func testModel(t *testing.T) *ListModel {
	t.Helper()
	devices := []models.Device{
		{Name: "IED1", Manufacturer: "Siemens", Type: "7SL86", Desc: "Line protection"},
		{Name: "IED2", Manufacturer: "ABB", Type: "REL670", Desc: "Bay control"},
		{Name: "IED3", Manufacturer: "Siemens", Type: "6MD85", Desc: "Bay control"},
	}
	m := newListModel(devices, filepath.Join(t.TempDir(), "devices.yaml"), 100*time.Millisecond)
	m.SetSize(120, 40)
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeInto(m *ListModel, s string) *ListModel {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestInitialStateShowsAllDevices(t *testing.T) {
	m := testModel(t)

	if len(m.visible) != 3 {
		t.Fatalf("visible = %d items, want 3", len(m.visible))
	}
	if !m.session.AllValid() {
		t.Error("fresh model should be all valid")
	}
}

func TestDisplayOrderFollowsDescriptiveFields(t *testing.T) {
	m := testModel(t)

	// ABB sorts before Siemens on the concatenated metadata key.
	first := m.session.Items()[m.visible[0]]
	if first.Identity() != "IED2" {
		t.Errorf("first visible item = %s, want IED2 (ABB sorts first)", first.Identity())
	}
}

func TestSearchDebounceDropsStaleVersions(t *testing.T) {
	m := testModel(t)

	m, _ = m.Update(keyRunes("/"))
	if !m.searchBar.Active() {
		t.Fatal("/ should focus the search bar")
	}

	m = typeInto(m, "abb")
	if m.searchVersion != 3 {
		t.Fatalf("searchVersion = %d, want 3 (one per keystroke)", m.searchVersion)
	}

	// A stale tick must not be applied.
	m, _ = m.Update(searchTickMsg{version: 1})
	if len(m.visible) != 3 {
		t.Errorf("stale tick filtered the list: visible = %d, want 3", len(m.visible))
	}

	// The latest tick applies the compiled query.
	m, _ = m.Update(searchTickMsg{version: 3})
	if len(m.visible) != 1 {
		t.Fatalf("visible = %d after filtering for abb, want 1", len(m.visible))
	}
	if got := m.session.Items()[m.visible[0]].Identity(); got != "IED2" {
		t.Errorf("filtered item = %s, want IED2", got)
	}
}

func TestSearchMatchesProposedName(t *testing.T) {
	m := testModel(t)

	// Rename IED1 and filter by the proposed name.
	m.session.SetCurrentValue("IED1", "LineProt1")
	m, _ = m.Update(keyRunes("/"))
	m = typeInto(m, "lineprot")
	m, _ = m.Update(searchTickMsg{version: m.searchVersion})

	if len(m.visible) != 1 {
		t.Fatalf("visible = %d, want 1 (search covers proposed names)", len(m.visible))
	}
	if got := m.session.Items()[m.visible[0]].Identity(); got != "IED1" {
		t.Errorf("filtered item = %s, want IED1", got)
	}
}

func TestFilterIndependentOfValidity(t *testing.T) {
	m := testModel(t)

	// An invalid proposed name keeps the item visible.
	m.session.SetCurrentValue("IED1", "1bad")
	m.applyFilter()

	if len(m.visible) != 3 {
		t.Errorf("visible = %d, want 3: validity must not affect visibility", len(m.visible))
	}
}

func TestEditFlow(t *testing.T) {
	m := testModel(t)

	// Select the first row and start editing.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.editing {
		t.Fatal("enter should start editing the selected row")
	}
	identity := m.editIdentity

	m = typeInto(m, "X")
	it, _ := m.session.Item(identity)
	if it.Current != identity+"X" {
		t.Errorf("current value = %q, want %q: edits apply per keystroke", it.Current, identity+"X")
	}
	if !it.Dirty() {
		t.Error("edited item should be dirty")
	}

	// Accept with enter.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.editing {
		t.Error("enter should stop editing")
	}
	if it.Current != identity+"X" {
		t.Errorf("accepted value = %q, want %q", it.Current, identity+"X")
	}
}

func TestEditAbortRestoresValue(t *testing.T) {
	m := testModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	identity := m.editIdentity
	m = typeInto(m, "ZZZ")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.editing {
		t.Fatal("esc should stop editing")
	}
	it, _ := m.session.Item(identity)
	if it.Dirty() {
		t.Errorf("aborted edit left value %q, want original", it.Current)
	}
}

func TestCommitBlockedMessages(t *testing.T) {
	m := testModel(t)

	// Nothing dirty.
	cmd := m.commitCmd()
	if msg, ok := cmd().(StatusMsg); !ok || msg != "Nothing to commit" {
		t.Errorf("commit with no edits = %v, want 'Nothing to commit' status", cmd())
	}

	// Dirty but invalid.
	m.session.SetCurrentValue("IED1", "1bad")
	cmd = m.commitCmd()
	if msg, ok := cmd().(StatusMsg); !ok || msg != "Cannot commit: fix invalid names first" {
		t.Errorf("commit with invalid edit = %v, want blocked status", cmd())
	}
}

func TestCommitAppliesRenamesToInventory(t *testing.T) {
	devices := []models.Device{
		{Name: "IED1", Manufacturer: "Siemens"},
		{Name: "IED2", Manufacturer: "ABB"},
	}
	invPath := filepath.Join(t.TempDir(), "devices.yaml")
	if err := files.SaveInventory(invPath, devices); err != nil {
		t.Fatal(err)
	}

	m := newListModel(devices, invPath, time.Millisecond)
	m.SetSize(120, 40)

	m.session.SetCurrentValue("IED1", "LineProt1")

	msg := m.commitCmd()()
	result, ok := msg.(commitResultMsg)
	if !ok {
		t.Fatalf("commit returned %T, want commitResultMsg", msg)
	}
	if result.err != nil {
		t.Fatalf("commit error: %v", result.err)
	}
	if result.applied != 1 {
		t.Errorf("applied = %d, want 1", result.applied)
	}

	loaded, err := files.LoadInventory(invPath)
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, d := range loaded {
		names[d.Name] = true
	}
	if !names["LineProt1"] {
		t.Errorf("inventory after commit = %v, want LineProt1", names)
	}

	// Feeding the result back resets the session from disk.
	m, _ = m.Update(result)
	if m.session.DirtyCount() != 0 {
		t.Error("session should be clean after commit reload")
	}
	if _, ok := m.session.Item("LineProt1"); !ok {
		t.Error("reloaded session should contain the renamed device")
	}
}

func TestRevertKeys(t *testing.T) {
	m := testModel(t)

	m.session.SetCurrentValue("IED1", "Changed1")
	m.session.SetCurrentValue("IED2", "Changed2")

	// r reverts only the selected row (IED2 sorts first).
	m, _ = m.Update(keyRunes("r"))
	it2, _ := m.session.Item("IED2")
	if it2.Dirty() {
		t.Error("r should revert the selected item")
	}
	it1, _ := m.session.Item("IED1")
	if !it1.Dirty() {
		t.Error("r must not touch other items")
	}

	// R reverts everything.
	m, _ = m.Update(keyRunes("R"))
	if m.session.DirtyCount() != 0 {
		t.Errorf("DirtyCount after R = %d, want 0", m.session.DirtyCount())
	}
}

func TestViewRenders(t *testing.T) {
	m := testModel(t)
	m.session.SetCurrentValue("IED1", "1bad")
	m.applyFilter()

	out := m.View()
	if out == "" {
		t.Fatal("View() returned empty output")
	}
	for _, want := range []string{"IED1", "IED2", "IED3"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %s", want)
		}
	}
}
