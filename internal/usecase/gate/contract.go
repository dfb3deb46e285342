package gate

import (
	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/verdict"
)

// Matcher compares a document slot value with a constraint's expected value.
type Matcher interface {
	Matches(actual, expected string) bool
}

// Evaluator is the gate contract shared by the pure Service and its decorators.
type Evaluator interface {
	Evaluate(q query.Query, doc domdoc.Document) (verdict.Verdict, error)
	EvaluateBatch(q query.Query, docs []domdoc.Document) ([]Evaluation, error)
}

// Evaluation pairs a document with its verdict.
type Evaluation struct {
	Document domdoc.Document
	Verdict  verdict.Verdict
}
