// Package compare contrasts similarity-only retrieval with similarity plus the slot gate.
package compare

import (
	"context"
	"fmt"

	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/verdict"
)

// Row is one candidate in a comparison report.
type Row struct {
	Document domdoc.Document
	Score    float64
	Verdict  verdict.Verdict
}

// Report is a side-by-side view: similarity scores next to gate verdicts, in input order.
type Report struct {
	Query query.Query
	Rows  []Row
	// Dropped counts candidates removed by the min score post-filter before gating.
	Dropped int
}

// Indistinguishable reports whether similarity alone cannot separate the candidates.
func (r Report) Indistinguishable() bool {
	if len(r.Rows) < 2 {
		return false
	}
	first := r.Rows[0].Score
	for _, row := range r.Rows[1:] {
		if row.Score != first {
			return false
		}
	}
	return true
}

// Accepted returns the rows that passed the gate.
func (r Report) Accepted() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Verdict.IsAccepted() {
			out = append(out, row)
		}
	}
	return out
}

// Options tunes a comparison run.
type Options struct {
	// MinScore drops candidates scoring below it before gating. 0 keeps all.
	MinScore float64
}

// Service runs comparisons.
type Service struct {
	scorer Scorer
	gate   Gate
}

// New creates a comparison service. A nil scorer selects ConstantScorer{DefaultMockScore}.
func New(scorer Scorer, g Gate) *Service {
	if scorer == nil {
		scorer = ConstantScorer{Value: DefaultMockScore}
	}
	return &Service{scorer: scorer, gate: g}
}

// Compare scores docs, applies the min score post-filter, then gates the survivors.
// Order is preserved; the gate never re-ranks.
func (s *Service) Compare(
	ctx context.Context, q query.Query, docs []domdoc.Document, opts Options,
) (Report, error) {
	return s.CompareWith(ctx, s.scorer, q, docs, opts)
}

// CompareWith is Compare with a caller-supplied scorer.
func (s *Service) CompareWith(
	ctx context.Context, scorer Scorer, q query.Query, docs []domdoc.Document, opts Options,
) (Report, error) {
	kept := make([]domdoc.Document, 0, len(docs))
	scores := make([]float64, 0, len(docs))
	for _, d := range docs {
		score, err := scorer.Score(ctx, q, d)
		if err != nil {
			return Report{}, fmt.Errorf("score %s: %w", d.ID(), err)
		}
		if opts.MinScore > 0 && score < opts.MinScore {
			continue
		}
		kept = append(kept, d)
		scores = append(scores, score)
	}

	evals, err := s.gate.EvaluateBatch(q, kept)
	if err != nil {
		return Report{}, fmt.Errorf("gate: %w", err)
	}

	rows := make([]Row, len(evals))
	for i, e := range evals {
		rows[i] = Row{Document: e.Document, Score: scores[i], Verdict: e.Verdict}
	}
	return Report{Query: q, Rows: rows, Dropped: len(docs) - len(kept)}, nil
}
