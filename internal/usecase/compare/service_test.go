package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/slotgate/internal/domain"
	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
	"github.com/kailas-cloud/slotgate/internal/usecase/gate"
)

// --- Mocks ---

type errScorer struct{ err error }

func (s errScorer) Score(_ context.Context, _ query.Query, _ domdoc.Document) (float64, error) {
	return 0, s.err
}

type countingGate struct {
	inner  *gate.Service
	called int
	lastN  int
}

func (g *countingGate) EvaluateBatch(q query.Query, docs []domdoc.Document) ([]gate.Evaluation, error) {
	g.called++
	g.lastN = len(docs)
	return g.inner.EvaluateBatch(q, docs)
}

// --- Fixtures ---

func ceoScenario(t *testing.T) (query.Query, []domdoc.Document) {
	t.Helper()
	q, err := query.FromMap("When did the CEO cancel the project?", "when", map[string]string{"who": "CEO"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	d1, _ := domdoc.New("doc_001", "The project was cancelled by the CEO in June due to budget cuts.",
		slot.Of(map[slot.Name]string{slot.Who: "CEO", slot.What: "cancelled project", slot.When: "June", slot.Why: "budget cuts"}))
	d2, _ := domdoc.New("doc_002", "The CEO is considering the project's future impact.",
		slot.Of(map[slot.Name]string{slot.Who: "CEO", slot.What: "considering impact"}))
	return q, []domdoc.Document{d1, d2}
}

// --- Tests ---

func TestCompare_MockScoresIndistinguishable(t *testing.T) {
	q, docs := ceoScenario(t)
	svc := New(nil, gate.New(nil))

	rep, err := svc.Compare(context.Background(), q, docs, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.Indistinguishable() {
		t.Error("constant scores should be indistinguishable")
	}
	for _, row := range rep.Rows {
		if row.Score != DefaultMockScore {
			t.Errorf("%s score = %f", row.Document.ID(), row.Score)
		}
	}

	acc := rep.Accepted()
	if len(acc) != 1 || acc[0].Document.ID() != "doc_001" {
		t.Fatalf("Accepted() = %+v", acc)
	}
	if acc[0].Verdict.Value() != "June" {
		t.Errorf("value = %q", acc[0].Verdict.Value())
	}
}

func TestCompare_PreservesOrder(t *testing.T) {
	q, docs := ceoScenario(t)
	docs[0], docs[1] = docs[1], docs[0]

	rep, err := New(nil, gate.New(nil)).Compare(context.Background(), q, docs, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Rows[0].Document.ID() != "doc_002" || rep.Rows[1].Document.ID() != "doc_001" {
		t.Errorf("order changed: %s, %s", rep.Rows[0].Document.ID(), rep.Rows[1].Document.ID())
	}
}

func TestCompare_MinScorePostFilter(t *testing.T) {
	q, docs := ceoScenario(t)
	g := &countingGate{inner: gate.New(nil)}
	scorer := FixedScorer{Scores: map[string]float64{"doc_001": 0.4, "doc_002": 0.9}}

	rep, err := New(scorer, g).Compare(context.Background(), q, docs, Options{MinScore: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Dropped != 1 || len(rep.Rows) != 1 {
		t.Fatalf("Dropped = %d, rows = %d", rep.Dropped, len(rep.Rows))
	}
	if g.lastN != 1 {
		t.Errorf("gate saw %d docs, want 1", g.lastN)
	}
	if rep.Indistinguishable() {
		t.Error("single row cannot be indistinguishable")
	}
}

func TestCompare_DistinctScores(t *testing.T) {
	q, docs := ceoScenario(t)
	scorer := FixedScorer{Scores: map[string]float64{"doc_001": 0.81}, Default: 0.92}

	rep, _ := New(nil, gate.New(nil)).CompareWith(context.Background(), scorer, q, docs, Options{})
	if rep.Indistinguishable() {
		t.Error("distinct scores reported indistinguishable")
	}
	if rep.Rows[1].Score != 0.92 {
		t.Errorf("fallback score = %f", rep.Rows[1].Score)
	}
}

func TestCompare_ScorerError(t *testing.T) {
	q, docs := ceoScenario(t)
	boom := errors.New("boom")

	_, err := New(errScorer{err: boom}, gate.New(nil)).Compare(context.Background(), q, docs, Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestCompare_InvalidSlot(t *testing.T) {
	_, docs := ceoScenario(t)
	q := query.Reconstruct("", slot.Name("when?"), "when?", nil)

	_, err := New(nil, gate.New(nil)).Compare(context.Background(), q, docs, Options{})
	if !errors.Is(err, domain.ErrInvalidSlotName) {
		t.Fatalf("err = %v", err)
	}
}
