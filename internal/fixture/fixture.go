// Package fixture loads YAML question-answering scenarios: a parsed query plus
// candidate documents with their slots and mock similarity scores.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/match"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
)

// File is the on-disk scenario layout.
type File struct {
	Name      string         `yaml:"name"`
	Query     QueryFile      `yaml:"query"`
	Match     string         `yaml:"match"`
	Documents []DocumentFile `yaml:"documents"`
}

// QueryFile is the YAML form of a query.
type QueryFile struct {
	Text        string            `yaml:"text"`
	TargetSlot  string            `yaml:"target_slot"`
	Constraints map[string]string `yaml:"constraints"`
}

// DocumentFile is the YAML form of a document. A null slot value means absent.
type DocumentFile struct {
	ID    string             `yaml:"id"`
	Text  string             `yaml:"text"`
	Slots map[string]*string `yaml:"slots"`
	Score *float64           `yaml:"score"`
}

// Scenario is a validated fixture.
type Scenario struct {
	name     string
	query    query.Query
	strategy match.Strategy
	docs     []domdoc.Document
	scores   map[string]float64
}

// Load reads and validates a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Scenario{}, fmt.Errorf("read fixture %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	if sc.name == "" {
		sc.name = filepath.Base(path)
	}
	return sc, nil
}

// Parse decodes and validates a scenario. Unknown YAML fields are rejected.
func Parse(data []byte) (Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Scenario{}, fmt.Errorf("empty fixture")
		}
		return Scenario{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f.Scenario()
}

// Scenario validates the file into domain values.
func (f File) Scenario() (Scenario, error) {
	q, err := query.FromMap(f.Query.Text, f.Query.TargetSlot, f.Query.Constraints)
	if err != nil {
		return Scenario{}, fmt.Errorf("query: %w", err)
	}

	strategy, err := match.ParseStrategy(f.Match)
	if err != nil {
		return Scenario{}, err
	}

	seen := make(map[string]struct{}, len(f.Documents))
	docs := make([]domdoc.Document, 0, len(f.Documents))
	scores := make(map[string]float64)
	for i, df := range f.Documents {
		if _, dup := seen[df.ID]; dup {
			return Scenario{}, fmt.Errorf("documents[%d]: duplicate id %q", i, df.ID)
		}
		seen[df.ID] = struct{}{}

		slots, err := slot.NewSet(df.Slots)
		if err != nil {
			return Scenario{}, fmt.Errorf("documents[%d] slots: %w", i, err)
		}
		d, err := domdoc.New(df.ID, df.Text, slots)
		if err != nil {
			return Scenario{}, fmt.Errorf("documents[%d]: %w", i, err)
		}
		docs = append(docs, d)
		if df.Score != nil {
			scores[df.ID] = *df.Score
		}
	}

	return Scenario{name: f.Name, query: q, strategy: strategy, docs: docs, scores: scores}, nil
}

// Name returns the scenario name.
func (s Scenario) Name() string { return s.name }

// Query returns the parsed query.
func (s Scenario) Query() query.Query { return s.query }

// Strategy returns the constraint matching strategy.
func (s Scenario) Strategy() match.Strategy { return s.strategy }

// Documents returns the candidates in file order.
func (s Scenario) Documents() []domdoc.Document {
	out := make([]domdoc.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Scores returns the mock similarity scores present in the file, keyed by document ID.
func (s Scenario) Scores() map[string]float64 {
	out := make(map[string]float64, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out
}
