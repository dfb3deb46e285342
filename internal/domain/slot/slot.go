// Package slot defines the 5W1H slot vocabulary and typed slot sets.
package slot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/slotgate/internal/domain"
)

// Name is a slot identifier from the fixed who/what/when/where/why/how vocabulary.
type Name string

// Slot name constants.
const (
	Who   Name = "who"
	What  Name = "what"
	When  Name = "when"
	Where Name = "where"
	Why   Name = "why"
	How   Name = "how"
)

var all = []Name{Who, What, When, Where, Why, How}

// All returns the slot vocabulary in canonical order.
func All() []Name {
	out := make([]Name, len(all))
	copy(out, all)
	return out
}

// Parse resolves a slot name case-insensitively ("When" and "when" are the same slot).
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if !n.IsValid() {
		return "", domain.NewInvalidSlotName(s)
	}
	return n, nil
}

// IsValid checks if the name is one of the recognized slots.
func (n Name) IsValid() bool {
	switch n {
	case Who, What, When, Where, Why, How:
		return true
	}
	return false
}

func (n Name) String() string { return string(n) }

// Set maps slot names to optional values. An absent key and a null value are equivalent.
type Set struct {
	values map[Name]string
}

// NewSet validates raw slot values. Nil pointers and empty strings are stored as absent.
// Keys that differ only by case name the same slot and are rejected.
func NewSet(raw map[string]*string) (Set, error) {
	values := make(map[Name]string, len(raw))
	seen := make(map[Name]string, len(raw))
	for k, v := range raw {
		n, err := Parse(k)
		if err != nil {
			return Set{}, err
		}
		if prev, dup := seen[n]; dup {
			a, b := prev, k
			if b < a {
				a, b = b, a
			}
			return Set{}, fmt.Errorf("%w: slot keys %q and %q both name %q", domain.ErrInvalidDocument, a, b, n)
		}
		seen[n] = k
		if v == nil || *v == "" {
			continue
		}
		values[n] = *v
	}
	return Set{values: values}, nil
}

// Of builds a Set from known-good names, skipping empty values.
func Of(values map[Name]string) Set {
	out := make(map[Name]string, len(values))
	for k, v := range values {
		if v != "" {
			out[k] = v
		}
	}
	return Set{values: out}
}

// Get returns the value at n and whether it is present (non-null).
func (s Set) Get(n Name) (string, bool) {
	v, ok := s.values[n]
	return v, ok
}

// Has reports whether n holds a non-null value.
func (s Set) Has(n Name) bool {
	_, ok := s.values[n]
	return ok
}

// Len returns the number of non-null slots.
func (s Set) Len() int { return len(s.values) }

// Names returns the filled slot names in canonical vocabulary order.
func (s Set) Names() []Name {
	out := make([]Name, 0, len(s.values))
	for n := range s.values {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}

// Values returns a copy of the filled slots.
func (s Set) Values() map[Name]string {
	out := make(map[Name]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func rank(n Name) int {
	for i, v := range all {
		if v == n {
			return i
		}
	}
	return len(all)
}
