package compare

import (
	"context"

	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
)

// DefaultMockScore is the similarity a keyword-overlapping embedding model would
// plausibly assign to every candidate in the demo scenarios.
const DefaultMockScore = 0.92

// ConstantScorer gives every document the same score.
type ConstantScorer struct {
	Value float64
}

// Score returns the constant value.
func (s ConstantScorer) Score(_ context.Context, _ query.Query, _ domdoc.Document) (float64, error) {
	return s.Value, nil
}

// FixedScorer returns per-document scores, falling back to Default for unknown IDs.
type FixedScorer struct {
	Scores  map[string]float64
	Default float64
}

// Score looks up the document's preassigned score.
func (s FixedScorer) Score(_ context.Context, _ query.Query, doc domdoc.Document) (float64, error) {
	if v, ok := s.Scores[doc.ID()]; ok {
		return v, nil
	}
	return s.Default, nil
}
