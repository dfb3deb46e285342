package query

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/slotgate/internal/domain"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
)

func TestNew_Valid(t *testing.T) {
	c, err := NewConstraint("who", "CEO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, err := New("When did the CEO cancel the project?", "When", []Constraint{c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TargetSlot() != slot.When {
		t.Errorf("TargetSlot() = %q", q.TargetSlot())
	}
	if q.TargetLabel() != "When" {
		t.Errorf("TargetLabel() = %q, want When", q.TargetLabel())
	}
	if len(q.Constraints()) != 1 || q.Constraints()[0].Slot() != slot.Who {
		t.Errorf("Constraints() = %+v", q.Constraints())
	}
}

func TestNew_InvalidTarget(t *testing.T) {
	_, err := New("", "whenever", nil)
	if !errors.Is(err, domain.ErrInvalidSlotName) {
		t.Fatalf("err = %v, want ErrInvalidSlotName", err)
	}
}

func TestNew_TooManyConstraints(t *testing.T) {
	c, _ := NewConstraint("who", "x")
	cs := make([]Constraint, MaxConstraints+1)
	for i := range cs {
		cs[i] = c
	}
	_, err := New("", "when", cs)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("err = %v, want ErrInvalidQuery", err)
	}
}

func TestNewConstraint_Invalid(t *testing.T) {
	if _, err := NewConstraint("boss", "CEO"); !errors.Is(err, domain.ErrInvalidSlotName) {
		t.Errorf("unknown key: err = %v", err)
	}
	if _, err := NewConstraint("who", ""); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("empty value: err = %v", err)
	}
}

func TestFromMap_OrdersByVocabulary(t *testing.T) {
	q, err := FromMap("", "when", map[string]string{"why": "budget", "who": "CEO", "what": "project"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs := q.Constraints()
	want := []slot.Name{slot.Who, slot.What, slot.Why}
	for i, n := range want {
		if cs[i].Slot() != n {
			t.Errorf("constraint[%d] = %q, want %q", i, cs[i].Slot(), n)
		}
	}
}

func TestConstraints_ReturnsCopy(t *testing.T) {
	c, _ := NewConstraint("who", "CEO")
	q, _ := New("", "when", []Constraint{c})
	cs := q.Constraints()
	cs[0] = Constraint{}
	if q.Constraints()[0].Expected() != "CEO" {
		t.Error("Constraints() exposes internal slice")
	}
}

func TestTargetLabel_FallsBackToSlot(t *testing.T) {
	q := Reconstruct("", slot.Why, "", nil)
	if q.TargetLabel() != "why" {
		t.Errorf("TargetLabel() = %q", q.TargetLabel())
	}
}
