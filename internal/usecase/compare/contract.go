package compare

import (
	"context"

	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/usecase/gate"
)

// Scorer is the upstream similarity stage. Only mock implementations live in this repo.
type Scorer interface {
	Score(ctx context.Context, q query.Query, doc domdoc.Document) (float64, error)
}

// Gate evaluates candidates in order.
type Gate interface {
	EvaluateBatch(q query.Query, docs []domdoc.Document) ([]gate.Evaluation, error)
}
