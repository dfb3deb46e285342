package match

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/slotgate/internal/domain"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"", Substring},
		{"exact", Exact},
		{"Substring", Substring},
		{" FUZZY ", Fuzzy},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if err != nil {
			t.Fatalf("ParseStrategy(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseStrategy("regex"); !errors.Is(err, domain.ErrInvalidMatchStrategy) {
		t.Errorf("regex: err = %v", err)
	}
}

func TestNew_InvalidStrategy(t *testing.T) {
	if _, err := New("semantic", 0); !errors.Is(err, domain.ErrInvalidMatchStrategy) {
		t.Fatalf("err = %v", err)
	}
}

func TestNew_DefaultDistance(t *testing.T) {
	m, err := New(Fuzzy, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.MaxDistance() != DefaultFuzzyMaxDistance {
		t.Errorf("MaxDistance() = %d", m.MaxDistance())
	}
}

func TestFuzzy_ShortValuesDoNotMatchByDistance(t *testing.T) {
	m, _ := New(Fuzzy, 0)

	tests := []struct {
		actual   string
		expected string
		want     bool
	}{
		{"CFO", "CEO", false},
		{"CTO", "CEO", false},
		{"HR", "IT", false},
		{"IT", "HR", false},
		{"", "CEO", false},
		{"ceo", "CEO", true},
		{"Acme Corporaton", "Acme Corporation", true},
		{"Acme Corp", "Acme Corporation", false},
		{"Jonh Smith", "John Smith", true},
	}
	for _, tt := range tests {
		t.Run(tt.actual+"/"+tt.expected, func(t *testing.T) {
			if got := m.Matches(tt.actual, tt.expected); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	exact, _ := New(Exact, 0)
	sub, _ := New(Substring, 0)
	fuzzy, _ := New(Fuzzy, 1)

	tests := []struct {
		name     string
		m        Matcher
		actual   string
		expected string
		want     bool
	}{
		{"exact equal", exact, "CEO", "CEO", true},
		{"exact contains", exact, "the CEO", "CEO", false},
		{"exact case", exact, "ceo", "CEO", false},
		{"substring contains", sub, "the CEO of Acme", "CEO", true},
		{"substring case sensitive", sub, "the ceo", "CEO", false},
		{"substring miss", sub, "CFO", "CEO", false},
		{"fuzzy case insensitive", fuzzy, "the ceo", "CEO", true},
		{"fuzzy typo long value", fuzzy, "Jon Smith", "John Smith", true},
		{"fuzzy short value needs containment", fuzzy, "CE0", "CEO", false},
		{"fuzzy too far", fuzzy, "CTO office", "CEO", false},
		{"zero value is substring", Matcher{}, "our CEO", "CEO", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Matches(tt.actual, tt.expected); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}
