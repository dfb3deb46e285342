package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
	"github.com/kailas-cloud/slotgate/internal/usecase/compare"
	"github.com/kailas-cloud/slotgate/internal/usecase/gate"
)

func scenario(t *testing.T) (query.Query, []domdoc.Document) {
	t.Helper()
	q, err := query.FromMap("When did the CEO cancel the project?", "when", map[string]string{"who": "CEO"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	d1, _ := domdoc.New("doc_001", "", slot.Of(map[slot.Name]string{slot.Who: "CEO", slot.When: "June"}))
	d2, _ := domdoc.New("doc_002", "", slot.Of(map[slot.Name]string{slot.Who: "CEO"}))
	return q, []domdoc.Document{d1, d2}
}

func TestPrinter_Evaluations(t *testing.T) {
	q, docs := scenario(t)
	evals, err := gate.New(nil).EvaluateBatch(q, docs)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	var buf bytes.Buffer
	p := &Printer{Theme: DefaultTheme(), NoColor: true}
	if err := p.Evaluations(&buf, q, evals); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Query: When did the CEO cancel the project?",
		"Target slot: when | who=CEO",
		"✅ doc_001 ACCEPTED (found when: June)",
		"❌ doc_002 REJECTED (missing target slot: when)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "doc_001") > strings.Index(out, "doc_002") {
		t.Error("documents rendered out of order")
	}
}

func TestPrinter_Report(t *testing.T) {
	q, docs := scenario(t)
	rep, err := compare.New(nil, gate.New(nil)).Compare(context.Background(), q, docs, compare.Options{})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	var buf bytes.Buffer
	p := NewPrinter()
	p.NoColor = true
	if err := p.Report(&buf, rep); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"--- Similarity only ---",
		"Doc ID: doc_001 | Similarity Score: 0.92",
		"Doc ID: doc_002 | Similarity Score: 0.92",
		"similarity alone cannot pick the answer",
		"--- Similarity + slot gate ---",
		"1 of 2 accepted",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_ReportDropped(t *testing.T) {
	q, docs := scenario(t)
	scorer := compare.FixedScorer{Scores: map[string]float64{"doc_002": 0.1}, Default: 0.9}
	rep, _ := compare.New(scorer, gate.New(nil)).Compare(context.Background(), q, docs, compare.Options{MinScore: 0.5})

	var buf bytes.Buffer
	p := &Printer{NoColor: true}
	_ = p.Report(&buf, rep)
	if !strings.Contains(buf.String(), "(1 below min score)") {
		t.Errorf("output:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "cannot pick") {
		t.Error("single candidate reported as indistinguishable")
	}
}
