// Package api holds the JSON wire types shared by the HTTP server and the Go SDK.
package api

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeInvalidSlotName  ErrorResponseCode = "invalid_slot_name"
	ErrorResponseCodeInvalidMatch     ErrorResponseCode = "invalid_match_strategy"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// Query is a parsed question.
type Query struct {
	Text        string            `json:"text,omitempty"`
	TargetSlot  string            `json:"target_slot"`
	Constraints map[string]string `json:"constraints,omitempty"`
}

// Document is a candidate with its extracted slots. A null slot value means absent.
type Document struct {
	ID    string             `json:"id"`
	Text  string             `json:"text,omitempty"`
	Slots map[string]*string `json:"slots,omitempty"`
	// Score is the upstream similarity score; only read by /v1/compare.
	Score *float64 `json:"score,omitempty"`
}

// Verdict is a gate decision.
type Verdict struct {
	Outcome string  `json:"outcome"`
	Reason  string  `json:"reason"`
	Value   *string `json:"value,omitempty"`
	Kind    string  `json:"kind,omitempty"`
	Slot    string  `json:"slot,omitempty"`
}

// Outcome values.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// EvaluateRequest is the body of POST /v1/evaluate.
type EvaluateRequest struct {
	Query    Query    `json:"query"`
	Document Document `json:"document"`
	Match    string   `json:"match,omitempty"`
}

// Evaluation is a single document verdict.
type Evaluation struct {
	DocumentID string  `json:"document_id"`
	Verdict    Verdict `json:"verdict"`
}

// BatchEvaluateRequest is the body of POST /v1/evaluate/batch.
type BatchEvaluateRequest struct {
	Query     Query      `json:"query"`
	Documents []Document `json:"documents"`
	Match     string     `json:"match,omitempty"`
}

// BatchEvaluateResponse lists verdicts in request order.
type BatchEvaluateResponse struct {
	Results  []Evaluation `json:"results"`
	Accepted int          `json:"accepted"`
	Rejected int          `json:"rejected"`
}

// CompareRequest is the body of POST /v1/compare.
type CompareRequest struct {
	Query     Query      `json:"query"`
	Documents []Document `json:"documents"`
	Match     string     `json:"match,omitempty"`
	MinScore  *float64   `json:"min_score,omitempty"`
}

// CompareRow is one candidate in a comparison.
type CompareRow struct {
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
	Verdict    Verdict `json:"verdict"`
}

// CompareResponse is the similarity-only vs gated view.
type CompareResponse struct {
	Rows              []CompareRow `json:"rows"`
	Accepted          []string     `json:"accepted"`
	Dropped           int          `json:"dropped"`
	Indistinguishable bool         `json:"indistinguishable"`
}

// SlotsResponse describes the slot vocabulary and matching options.
type SlotsResponse struct {
	Slots           []string `json:"slots"`
	MatchStrategies []string `json:"match_strategies"`
	DefaultMatch    string   `json:"default_match"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}
