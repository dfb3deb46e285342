// Package match implements constraint value matching strategies.
package match

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/kailas-cloud/slotgate/internal/domain"
)

// Strategy selects how a constraint's expected value is compared with a slot value.
type Strategy string

// Strategy constants.
const (
	Exact     Strategy = "exact"
	Substring Strategy = "substring"
	// Fuzzy is case-insensitive containment or a bounded edit distance.
	// The bound shrinks with the expected value's length, so short values
	// like "CEO" only match by containment.
	Fuzzy Strategy = "fuzzy"
)

const fuzzyRunesPerEdit = 4

// DefaultFuzzyMaxDistance is the edit distance allowed by Fuzzy when none is configured.
const DefaultFuzzyMaxDistance = 2

// ParseStrategy resolves a strategy name. Empty selects Substring.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return Substring, nil
	}
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q (want exact, substring or fuzzy)", domain.ErrInvalidMatchStrategy, s)
	}
	return st, nil
}

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Exact || s == Substring || s == Fuzzy
}

// Matcher compares a slot value against a constraint's expected value.
type Matcher struct {
	strategy    Strategy
	maxDistance int
}

// New creates a Matcher. maxDistance applies to Fuzzy only; <= 0 selects the default.
func New(strategy Strategy, maxDistance int) (Matcher, error) {
	if !strategy.IsValid() {
		return Matcher{}, fmt.Errorf("%w: %q", domain.ErrInvalidMatchStrategy, strategy)
	}
	if maxDistance <= 0 {
		maxDistance = DefaultFuzzyMaxDistance
	}
	return Matcher{strategy: strategy, maxDistance: maxDistance}, nil
}

// Default returns the substring matcher.
func Default() Matcher {
	return Matcher{strategy: Substring, maxDistance: DefaultFuzzyMaxDistance}
}

// Strategy returns the configured strategy.
func (m Matcher) Strategy() Strategy {
	if m.strategy == "" {
		return Substring
	}
	return m.strategy
}

// MaxDistance returns the fuzzy edit distance bound.
func (m Matcher) MaxDistance() int { return m.maxDistance }

// Matches reports whether actual satisfies expected.
func (m Matcher) Matches(actual, expected string) bool {
	switch m.Strategy() {
	case Exact:
		return actual == expected
	case Fuzzy:
		a := strings.ToLower(strings.TrimSpace(actual))
		e := strings.ToLower(strings.TrimSpace(expected))
		if strings.Contains(a, e) {
			return true
		}
		bound := m.distanceFor(e)
		if bound == 0 {
			return false
		}
		return levenshtein.ComputeDistance(a, e) <= bound
	default:
		return strings.Contains(actual, expected)
	}
}

// distanceFor scales the edit distance bound to the expected value:
// one edit per four runes, capped at maxDistance.
func (m Matcher) distanceFor(expected string) int {
	return min(m.maxDistance, utf8.RuneCountInString(expected)/fuzzyRunesPerEdit)
}
