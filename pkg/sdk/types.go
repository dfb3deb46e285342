package slotgate

import "github.com/kailas-cloud/slotgate/internal/transport/api"

// Wire types shared with the server.
type (
	Query           = api.Query
	Document        = api.Document
	Evaluation      = api.Evaluation
	CompareRow      = api.CompareRow
	CompareResponse = api.CompareResponse
	SlotsResponse   = api.SlotsResponse
	HealthResponse  = api.HealthResponse
)

// Verdict is a gate decision.
type Verdict api.Verdict

// Accepted reports whether the document passed the gate.
func (v Verdict) Accepted() bool { return v.Outcome == api.OutcomeAccepted }

// BatchResult is the outcome of EvaluateBatch, in request order.
type BatchResult struct {
	Results  []Evaluation
	Accepted int
	Rejected int
}

// CompareOptions tunes Compare.
type CompareOptions struct {
	// MinScore drops candidates scoring below it before gating. Nil uses the server default.
	MinScore *float64
}

// Value returns a pointer to s, for building slot maps.
func Value(s string) *string { return &s }

// Score returns a pointer to f, for Document.Score and CompareOptions.MinScore.
func Score(f float64) *float64 { return &f }
