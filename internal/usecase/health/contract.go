package health

import (
	"github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/verdict"
)

// GateEvaluator is the gate under self-test.
type GateEvaluator interface {
	Evaluate(q query.Query, doc document.Document) (verdict.Verdict, error)
}
