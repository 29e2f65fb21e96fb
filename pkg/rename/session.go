// Package rename tracks proposed name edits for a loaded set of device
// records: per-item validity, dirty state, and duplicate detection
// across the whole set. Nothing outside the session is touched until
// the caller takes the commit result and applies it to the inventory.
package rename

import (
	"fmt"
	"regexp"

	"github.com/sclrename/sclrename-cli/pkg/models"
)

// Reason classifies the validation outcome for one item. Exactly one
// reason applies at a time; the first failing rule wins.
type Reason int

const (
	ReasonValid Reason = iota
	ReasonEmpty
	ReasonPattern
	ReasonLength
	ReasonDuplicate
)

// MaxNameLength is the longest accepted device name.
const MaxNameLength = 63

// namePattern accepts a leading letter followed by letters, digits, or
// underscores.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Message returns the user-facing description of a validation outcome.
func (r Reason) Message() string {
	switch r {
	case ReasonValid:
		return ""
	case ReasonEmpty:
		return "Name cannot be empty"
	case ReasonPattern:
		return "Name must start with a letter and contain only letters, digits, or underscores"
	case ReasonLength:
		return fmt.Sprintf("Name must be at most %d characters", MaxNameLength)
	case ReasonDuplicate:
		return "Name is already used by another device"
	default:
		return "Invalid name"
	}
}

// Item is one editable device record in the session.
type Item struct {
	Device  models.Device // snapshot from the inventory, Name is the identity
	Current string        // operator-edited proposed name
	Reason  Reason
}

// Identity returns the stable key of the item: the original name.
func (it *Item) Identity() string { return it.Device.Name }

// Dirty reports whether the proposed name differs from the original.
func (it *Item) Dirty() bool { return it.Current != it.Device.Name }

// Valid reports whether the item currently passes validation.
func (it *Item) Valid() bool { return it.Reason == ReasonValid }

// SearchText returns the text search queries are matched against.
func (it *Item) SearchText() string { return it.Device.SearchText(it.Current) }

// Session holds all items of one batch-rename operation plus the
// derived global state. All methods are synchronous; callers drive
// edits serially.
type Session struct {
	items    []*Item
	byID     map[string]*Item
	allValid bool
}

// NewSession snapshots the given devices into a fresh session. Every
// item starts with its original name, clean and valid. Item order
// follows the input order.
func NewSession(devices []models.Device) *Session {
	s := &Session{
		byID:     make(map[string]*Item, len(devices)),
		allValid: true,
	}
	for _, d := range devices {
		it := &Item{Device: d, Current: d.Name}
		s.items = append(s.items, it)
		s.byID[d.Name] = it
	}
	s.revalidate()
	return s
}

// SetCurrentValue updates one item's proposed name and revalidates the
// whole session: a duplicate collision invalidates both holders, and
// reverting an edit can restore another item's validity. It returns
// the edited item's resulting reason; ok is false when the identity is
// not part of the session and nothing was changed.
func (s *Session) SetCurrentValue(identity, value string) (Reason, bool) {
	it, ok := s.byID[identity]
	if !ok {
		return ReasonValid, false
	}
	it.Current = value
	s.revalidate()
	return it.Reason, true
}

// revalidate recomputes every item's reason and the session-wide
// validity. Rule order per item: empty, pattern, length, duplicate.
// The duplicate rule counts holders of each value across the live
// session; any count other than one is a violation for every holder.
func (s *Session) revalidate() {
	counts := make(map[string]int, len(s.items))
	for _, it := range s.items {
		counts[it.Current]++
	}

	s.allValid = true
	for _, it := range s.items {
		it.Reason = validate(it.Current, counts)
		if it.Reason != ReasonValid {
			s.allValid = false
		}
	}
}

// CheckName validates a single name against the naming rules, without
// the session's duplicate check. Used by callers that validate names
// outside a live session, such as the CLI plan validator.
func CheckName(value string) Reason {
	return validate(value, map[string]int{value: 1})
}

func validate(value string, counts map[string]int) Reason {
	if value == "" {
		return ReasonEmpty
	}
	if !namePattern.MatchString(value) {
		return ReasonPattern
	}
	if len(value) > MaxNameLength {
		return ReasonLength
	}
	if counts[value] != 1 {
		return ReasonDuplicate
	}
	return ReasonValid
}

// Items returns the session's items in load order. The slice is shared
// state for display only; mutate through SetCurrentValue.
func (s *Session) Items() []*Item {
	return s.items
}

// Item looks up one item by identity.
func (s *Session) Item(identity string) (*Item, bool) {
	it, ok := s.byID[identity]
	return it, ok
}

// AllValid reports whether every item currently passes validation.
func (s *Session) AllValid() bool {
	return s.allValid
}

// DirtyCount returns the number of items whose proposed name differs
// from the original.
func (s *Session) DirtyCount() int {
	n := 0
	for _, it := range s.items {
		if it.Dirty() {
			n++
		}
	}
	return n
}

// PendingRenames returns the (old name, new name) pairs for all dirty
// items, in load order.
func (s *Session) PendingRenames() []models.Rename {
	var renames []models.Rename
	for _, it := range s.items {
		if it.Dirty() {
			renames = append(renames, models.Rename{From: it.Device.Name, To: it.Current})
		}
	}
	return renames
}

// IsCommittable reports whether the session has pending renames and
// every item is valid.
func (s *Session) IsCommittable() bool {
	return s.allValid && s.DirtyCount() > 0
}

// Commit returns the final rename set. Callers are expected to apply
// exactly this set to the inventory and then discard or reset the
// session. Committing an empty or invalid session is refused.
func (s *Session) Commit() ([]models.Rename, error) {
	if !s.allValid {
		return nil, fmt.Errorf("cannot commit: invalid names present")
	}
	renames := s.PendingRenames()
	if len(renames) == 0 {
		return nil, fmt.Errorf("cannot commit: no pending renames")
	}
	return renames, nil
}

// Revert restores one item's proposed name to its original.
func (s *Session) Revert(identity string) bool {
	it, ok := s.byID[identity]
	if !ok {
		return false
	}
	it.Current = it.Device.Name
	s.revalidate()
	return true
}

// Reset discards every edit, returning all items to their original
// names.
func (s *Session) Reset() {
	for _, it := range s.items {
		it.Current = it.Device.Name
	}
	s.revalidate()
}
