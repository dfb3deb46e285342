package gate

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/slotgate/internal/domain"
	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/verdict"
	"github.com/kailas-cloud/slotgate/internal/metrics"
)

// InstrumentedGate wraps an Evaluator with verdict metrics and debug logging.
// Verdicts pass through unchanged.
type InstrumentedGate struct {
	inner  Evaluator
	logger *zap.Logger
}

var _ Evaluator = (*InstrumentedGate)(nil)

// NewInstrumentedGate wraps inner. A nil logger disables logging.
func NewInstrumentedGate(inner Evaluator, logger *zap.Logger) *InstrumentedGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedGate{inner: inner, logger: logger}
}

// Evaluate delegates to the inner gate and records the outcome.
func (g *InstrumentedGate) Evaluate(q query.Query, doc domdoc.Document) (verdict.Verdict, error) {
	v, err := g.inner.Evaluate(q, doc)
	if err != nil {
		g.recordError(q, err)
		return verdict.Verdict{}, err
	}
	g.record(q, doc, v)
	return v, nil
}

// EvaluateBatch delegates to the inner gate and records every verdict.
func (g *InstrumentedGate) EvaluateBatch(q query.Query, docs []domdoc.Document) ([]Evaluation, error) {
	start := time.Now()

	evals, err := g.inner.EvaluateBatch(q, docs)
	if err != nil {
		g.recordError(q, err)
		return nil, err
	}

	metrics.GateBatchSize.Observe(float64(len(docs)))
	accepted := 0
	for _, e := range evals {
		g.record(q, e.Document, e.Verdict)
		if e.Verdict.IsAccepted() {
			accepted++
		}
	}

	g.logger.Debug("Batch evaluation completed",
		zap.String("target_slot", q.TargetSlot().String()),
		zap.Int("documents", len(docs)),
		zap.Int("accepted", accepted),
		zap.Int("rejected", len(evals)-accepted),
		zap.Duration("duration", time.Since(start)),
	)
	return evals, nil
}

func (g *InstrumentedGate) record(q query.Query, doc domdoc.Document, v verdict.Verdict) {
	metrics.GateVerdictsTotal.WithLabelValues(
		string(v.Outcome()), string(v.Kind()), q.TargetSlot().String(),
	).Inc()

	g.logger.Debug("Gate verdict",
		zap.String("document_id", doc.ID()),
		zap.String("target_slot", q.TargetSlot().String()),
		zap.String("outcome", string(v.Outcome())),
		zap.String("reason", v.Reason()),
	)
}

func (g *InstrumentedGate) recordError(q query.Query, err error) {
	errType := "internal"
	if errors.Is(err, domain.ErrInvalidSlotName) {
		errType = "invalid_slot_name"
	}
	metrics.GateErrorsTotal.WithLabelValues(errType).Inc()

	g.logger.Warn("Gate evaluation failed",
		zap.String("target_slot", q.TargetLabel()),
		zap.String("error_type", errType),
		zap.Error(err),
	)
}
