// Package gate rejects retrieval candidates that lack the slot a query asks about.
package gate

import (
	"fmt"

	"github.com/kailas-cloud/slotgate/internal/domain"
	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/match"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/verdict"
)

// Service is the stateless slot filter gate. Safe for concurrent use.
type Service struct {
	matcher Matcher
}

var _ Evaluator = (*Service)(nil)

// New creates a gate. A nil matcher selects substring matching.
func New(m Matcher) *Service {
	if m == nil {
		m = match.Default()
	}
	return &Service{matcher: m}
}

// WithMatcher returns a copy of the gate that matches constraints with m.
func (s *Service) WithMatcher(m Matcher) *Service {
	return New(m)
}

// Evaluate decides whether doc answers q. Constraints are checked in order
// before the target slot; missing data is a rejection, never an error.
func (s *Service) Evaluate(q query.Query, doc domdoc.Document) (verdict.Verdict, error) {
	if err := validateTarget(q); err != nil {
		return verdict.Verdict{}, err
	}
	return s.decide(q, doc), nil
}

// EvaluateBatch evaluates docs in input order. Rejected documents stay in the output.
func (s *Service) EvaluateBatch(q query.Query, docs []domdoc.Document) ([]Evaluation, error) {
	if err := validateTarget(q); err != nil {
		return nil, err
	}
	out := make([]Evaluation, len(docs))
	for i, d := range docs {
		out[i] = Evaluation{Document: d, Verdict: s.decide(q, d)}
	}
	return out, nil
}

func (s *Service) decide(q query.Query, doc domdoc.Document) verdict.Verdict {
	slots := doc.Slots()

	for _, c := range q.Constraints() {
		v, ok := slots.Get(c.Slot())
		if !ok || !s.matcher.Matches(v, c.Expected()) {
			return verdict.ConstraintMismatch(c.Slot())
		}
	}

	target := q.TargetSlot()
	v, ok := slots.Get(target)
	if !ok {
		return verdict.MissingTarget(target, q.TargetLabel())
	}
	return verdict.Accept(target, q.TargetLabel(), v)
}

func validateTarget(q query.Query) error {
	if !q.TargetSlot().IsValid() {
		return fmt.Errorf("evaluate: %w", domain.NewInvalidSlotName(q.TargetLabel()))
	}
	return nil
}
