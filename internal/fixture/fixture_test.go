package fixture

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/slotgate/internal/domain"
	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/match"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
)

func TestLoad_CEOScenario(t *testing.T) {
	sc, err := Load(filepath.Join("..", "..", "fixtures", "ceo_cancellation.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Name() != "ceo-cancellation" {
		t.Errorf("Name() = %q", sc.Name())
	}
	if sc.Query().TargetSlot() != slot.When {
		t.Errorf("TargetSlot() = %q", sc.Query().TargetSlot())
	}
	if sc.Strategy() != match.Substring {
		t.Errorf("Strategy() = %q", sc.Strategy())
	}

	docs := sc.Documents()
	if len(docs) != 2 {
		t.Fatalf("len(Documents()) = %d", len(docs))
	}
	if docs[0].ID() != "doc_001" || docs[1].ID() != "doc_002" {
		t.Errorf("order: %s, %s", docs[0].ID(), docs[1].ID())
	}
	if docs[1].Slots().Has(slot.When) {
		t.Error("null when loaded as present")
	}
	if sc.Scores()["doc_002"] != 0.92 {
		t.Errorf("Scores() = %v", sc.Scores())
	}
}

func TestLoad_NameFallsBackToFile(t *testing.T) {
	sc, err := Load(filepath.Join("..", "..", "fixtures", "paris_deal.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Name() != "paris-deal" {
		t.Errorf("Name() = %q", sc.Name())
	}
	if sc.Query().TargetLabel() != "When" {
		t.Errorf("TargetLabel() = %q", sc.Query().TargetLabel())
	}
	if len(sc.Scores()) != 0 {
		t.Errorf("Scores() = %v, want empty", sc.Scores())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	if err == nil || !strings.Contains(err.Error(), "read fixture") {
		t.Fatalf("err = %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		is   error
		want string
	}{
		{
			name: "empty",
			yaml: "",
			want: "empty fixture",
		},
		{
			name: "unknown field",
			yaml: "query: {target_slot: when}\nranking: bm25\n",
			want: "parse fixture",
		},
		{
			name: "bad target",
			yaml: "query: {target_slot: whenever}\n",
			is:   domain.ErrInvalidSlotName,
		},
		{
			name: "bad slot key",
			yaml: "query: {target_slot: when}\ndocuments:\n  - id: d1\n    slots: {whom: x}\n",
			is:   domain.ErrInvalidSlotName,
		},
		{
			name: "bad match",
			yaml: "query: {target_slot: when}\nmatch: regex\n",
			is:   domain.ErrInvalidMatchStrategy,
		},
		{
			name: "duplicate id",
			yaml: "query: {target_slot: when}\ndocuments:\n  - id: d1\n  - id: d1\n",
			want: "duplicate id",
		},
		{
			name: "missing id",
			yaml: "query: {target_slot: when}\ndocuments:\n  - text: hi\n",
			is:   domain.ErrInvalidDocument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestScenario_DocumentsIsCopy(t *testing.T) {
	sc, err := Parse([]byte("query: {target_slot: who}\ndocuments:\n  - id: d1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	docs := sc.Documents()
	docs[0] = domdoc.Reconstruct("other", "", slot.Set{})
	if sc.Documents()[0].ID() != "d1" {
		t.Error("Documents() exposes internal slice")
	}
}
