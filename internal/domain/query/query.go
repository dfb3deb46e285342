package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/slotgate/internal/domain"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
)

// MaxConstraints is the maximum number of required constraints per query.
const MaxConstraints = 32

// Constraint requires a slot to hold a value matching Expected.
type Constraint struct {
	slot     slot.Name
	expected string
}

// NewConstraint validates and creates a Constraint.
func NewConstraint(key, expected string) (Constraint, error) {
	n, err := slot.Parse(key)
	if err != nil {
		return Constraint{}, fmt.Errorf("constraint key: %w", err)
	}
	if expected == "" {
		return Constraint{}, fmt.Errorf("%w: expected value is required for constraint %q", domain.ErrInvalidQuery, n)
	}
	return Constraint{slot: n, expected: expected}, nil
}

// Slot returns the constrained slot.
func (c Constraint) Slot() slot.Name { return c.slot }

// Expected returns the value the slot must match.
func (c Constraint) Expected() string { return c.expected }

// Query is an already-parsed question: the slot it needs answered plus known facts.
type Query struct {
	text        string
	target      slot.Name
	targetLabel string
	constraints []Constraint
}

// New validates and creates a Query. target is kept as spelled for use in verdict reasons.
func New(text, target string, constraints []Constraint) (Query, error) {
	n, err := slot.Parse(target)
	if err != nil {
		return Query{}, fmt.Errorf("target slot: %w", err)
	}
	if len(constraints) > MaxConstraints {
		return Query{}, fmt.Errorf("%w: too many constraints (max %d)", domain.ErrInvalidQuery, MaxConstraints)
	}
	cs := make([]Constraint, len(constraints))
	copy(cs, constraints)
	return Query{
		text:        text,
		target:      n,
		targetLabel: strings.TrimSpace(target),
		constraints: cs,
	}, nil
}

// FromMap builds a Query from a constraint map. Constraints are ordered by slot vocabulary.
func FromMap(text, target string, constraints map[string]string) (Query, error) {
	cs := make([]Constraint, 0, len(constraints))
	for k, v := range constraints {
		c, err := NewConstraint(k, v)
		if err != nil {
			return Query{}, err
		}
		cs = append(cs, c)
	}
	order := make(map[slot.Name]int)
	for i, n := range slot.All() {
		order[n] = i
	}
	sort.SliceStable(cs, func(i, j int) bool { return order[cs[i].slot] < order[cs[j].slot] })
	return New(text, target, cs)
}

// Reconstruct creates a Query without validation. Used by tests and callers that
// carry the target slot from an external source; the gate re-validates it.
func Reconstruct(text string, target slot.Name, targetLabel string, constraints []Constraint) Query {
	return Query{text: text, target: target, targetLabel: targetLabel, constraints: constraints}
}

// Text returns the original question text (informational only).
func (q Query) Text() string { return q.text }

// TargetSlot returns the slot whose presence is mandatory.
func (q Query) TargetSlot() slot.Name { return q.target }

// TargetLabel returns the target slot as the caller spelled it.
func (q Query) TargetLabel() string {
	if q.targetLabel == "" {
		return string(q.target)
	}
	return q.targetLabel
}

// Constraints returns the required constraints in evaluation order.
func (q Query) Constraints() []Constraint {
	out := make([]Constraint, len(q.constraints))
	copy(out, q.constraints)
	return out
}
