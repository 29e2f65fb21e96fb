package rename

import (
	"strings"
	"testing"

	"github.com/sclrename/sclrename-cli/pkg/models"
)

func newTestSession(names ...string) *Session {
	devices := make([]models.Device, len(names))
	for i, n := range names {
		devices[i] = models.Device{Name: n, Manufacturer: "TestCo"}
	}
	return NewSession(devices)
}

func TestNewSessionIsCleanAndValid(t *testing.T) {
	s := newTestSession("IED1", "IED2")

	if !s.AllValid() {
		t.Error("fresh session should be all valid")
	}
	if s.DirtyCount() != 0 {
		t.Errorf("fresh session DirtyCount = %d, want 0", s.DirtyCount())
	}
	if s.IsCommittable() {
		t.Error("fresh session should not be committable")
	}
	for _, it := range s.Items() {
		if it.Current != it.Identity() {
			t.Errorf("item %s current = %q, want original", it.Identity(), it.Current)
		}
	}
}

func TestSetCurrentValueValidation(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  Reason
	}{
		{"valid simple", "Relay1", ReasonValid},
		{"valid underscore", "Bay_1_Prot", ReasonValid},
		{"valid single letter", "A", ReasonValid},
		{"valid max length", "A" + strings.Repeat("b", MaxNameLength-1), ReasonValid},
		{"empty", "", ReasonEmpty},
		{"leading digit", "1bad", ReasonPattern},
		{"leading underscore", "_bad", ReasonPattern},
		{"embedded space", "bad name", ReasonPattern},
		{"embedded dash", "bad-name", ReasonPattern},
		{"too long", strings.Repeat("A", MaxNameLength+1), ReasonLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession("IED1", "IED2")
			got, ok := s.SetCurrentValue("IED1", tt.value)
			if !ok {
				t.Fatal("SetCurrentValue reported unknown identity")
			}
			if got != tt.want {
				t.Errorf("SetCurrentValue(IED1, %q) = %v, want %v", tt.value, got, tt.want)
			}
			if tt.want != ReasonValid && s.AllValid() {
				t.Error("session should not be all valid after an invalid edit")
			}
		})
	}
}

func TestSetCurrentValueUnknownIdentity(t *testing.T) {
	s := newTestSession("IED1")
	if _, ok := s.SetCurrentValue("IED9", "X"); ok {
		t.Error("SetCurrentValue on unknown identity should report ok=false")
	}
	if !s.AllValid() {
		t.Error("unknown-identity edit must not alter session state")
	}
}

func TestDuplicateInvalidatesBothHolders(t *testing.T) {
	s := newTestSession("IED1", "IED2")

	reason, _ := s.SetCurrentValue("IED1", "IED2")
	if reason != ReasonDuplicate {
		t.Errorf("colliding edit reason = %v, want ReasonDuplicate", reason)
	}

	it1, _ := s.Item("IED1")
	it2, _ := s.Item("IED2")
	if it1.Reason != ReasonDuplicate {
		t.Errorf("IED1 reason = %v, want ReasonDuplicate", it1.Reason)
	}
	if it2.Reason != ReasonDuplicate {
		t.Errorf("IED2 reason = %v, want ReasonDuplicate (collision is symmetric)", it2.Reason)
	}
	if s.AllValid() {
		t.Error("AllValid should be false while a collision exists")
	}
	if s.IsCommittable() {
		t.Error("colliding session must not be committable")
	}
}

func TestRevertingEditRestoresBothHolders(t *testing.T) {
	s := newTestSession("IED1", "IED2")
	s.SetCurrentValue("IED1", "IED2")

	reason, _ := s.SetCurrentValue("IED1", "IED1")
	if reason != ReasonValid {
		t.Errorf("reverted edit reason = %v, want ReasonValid", reason)
	}

	it1, _ := s.Item("IED1")
	it2, _ := s.Item("IED2")
	if !it1.Valid() || !it2.Valid() {
		t.Error("both items should be valid again after the collision is reverted")
	}
	if it1.Dirty() {
		t.Error("reverted item should not be dirty")
	}
	if !s.AllValid() {
		t.Error("AllValid should be true after revert")
	}
	if len(s.PendingRenames()) != 0 {
		t.Errorf("PendingRenames = %v, want none after revert", s.PendingRenames())
	}
}

func TestPendingRenamesAndCommit(t *testing.T) {
	s := newTestSession("IED1", "IED2", "IED3")

	s.SetCurrentValue("IED1", "BayCtrl1")
	s.SetCurrentValue("IED3", "BayCtrl3")

	if !s.IsCommittable() {
		t.Fatal("two valid distinct edits should be committable")
	}

	renames, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	want := map[string]string{"IED1": "BayCtrl1", "IED3": "BayCtrl3"}
	if len(renames) != len(want) {
		t.Fatalf("Commit() returned %d renames, want %d", len(renames), len(want))
	}
	for _, r := range renames {
		if want[r.From] != r.To {
			t.Errorf("unexpected rename %s -> %s", r.From, r.To)
		}
	}

	// Caller resets the session after dispatching the renames.
	s.Reset()
	if s.DirtyCount() != 0 {
		t.Errorf("DirtyCount after Reset = %d, want 0", s.DirtyCount())
	}
	if s.IsCommittable() {
		t.Error("reset session should not be committable")
	}
}

func TestCommitRefusals(t *testing.T) {
	s := newTestSession("IED1", "IED2")

	if _, err := s.Commit(); err == nil {
		t.Error("Commit with no pending renames should be refused")
	}

	s.SetCurrentValue("IED1", "1bad")
	if _, err := s.Commit(); err == nil {
		t.Error("Commit with an invalid item should be refused")
	}
}

func TestSwapThroughTemporaryName(t *testing.T) {
	s := newTestSession("IED1", "IED2")

	s.SetCurrentValue("IED1", "Tmp")
	s.SetCurrentValue("IED2", "IED1")
	reason, _ := s.SetCurrentValue("IED1", "IED2")

	if reason != ReasonValid {
		t.Errorf("final swap edit reason = %v, want ReasonValid", reason)
	}
	if !s.IsCommittable() {
		t.Error("completed swap should be committable")
	}
	if s.DirtyCount() != 2 {
		t.Errorf("DirtyCount = %d, want 2", s.DirtyCount())
	}
}

func TestSetCurrentValueIdempotent(t *testing.T) {
	s1 := newTestSession("IED1", "IED2")
	s2 := newTestSession("IED1", "IED2")

	s1.SetCurrentValue("IED1", "Relay1")
	s2.SetCurrentValue("IED1", "Relay1")
	s2.SetCurrentValue("IED1", "Relay1")

	for _, id := range []string{"IED1", "IED2"} {
		a, _ := s1.Item(id)
		b, _ := s2.Item(id)
		if a.Current != b.Current || a.Reason != b.Reason || a.Dirty() != b.Dirty() {
			t.Errorf("item %s diverged after repeated identical edit: %+v vs %+v", id, a, b)
		}
	}
	if s1.AllValid() != s2.AllValid() {
		t.Error("AllValid diverged after repeated identical edit")
	}
}

func TestRevert(t *testing.T) {
	s := newTestSession("IED1", "IED2")
	s.SetCurrentValue("IED1", "Renamed")

	if !s.Revert("IED1") {
		t.Fatal("Revert reported unknown identity")
	}
	it, _ := s.Item("IED1")
	if it.Dirty() || !it.Valid() {
		t.Error("reverted item should be clean and valid")
	}
	if s.Revert("IED9") {
		t.Error("Revert on unknown identity should report false")
	}
}

func TestReasonMessages(t *testing.T) {
	reasons := []Reason{ReasonEmpty, ReasonPattern, ReasonLength, ReasonDuplicate}
	for _, r := range reasons {
		if r.Message() == "" {
			t.Errorf("Reason %v should have a user-facing message", r)
		}
	}
	if ReasonValid.Message() != "" {
		t.Error("ReasonValid should have no message")
	}
}
