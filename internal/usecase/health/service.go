package health

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
	"github.com/kailas-cloud/slotgate/internal/domain/verdict"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service runs a canary evaluation through the gate.
type Service struct {
	gate GateEvaluator
}

// New creates a Service.
func New(gate GateEvaluator) *Service {
	return &Service{gate: gate}
}

// Check evaluates a complete and an incomplete canary document and expects
// acceptance and rejection respectively.
func (s *Service) Check(_ context.Context) Report {
	checks := map[string]CheckResult{"gate": CheckOK}
	if err := s.canary(); err != nil {
		checks["gate"] = CheckError
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	return Report{Status: status, Checks: checks}
}

func (s *Service) canary() error {
	q := query.Reconstruct("", slot.When, "when", nil)
	complete := document.Reconstruct("canary-complete", "", slot.Of(map[slot.Name]string{slot.When: "now"}))
	incomplete := document.Reconstruct("canary-incomplete", "", slot.Of(nil))

	v, err := s.gate.Evaluate(q, complete)
	if err != nil {
		return fmt.Errorf("canary accept: %w", err)
	}
	if v.Outcome() != verdict.Accepted || v.Value() != "now" {
		return fmt.Errorf("canary accept: got %s", v.Reason())
	}

	v, err = s.gate.Evaluate(q, incomplete)
	if err != nil {
		return fmt.Errorf("canary reject: %w", err)
	}
	if v.Kind() != verdict.KindMissingTargetSlot {
		return fmt.Errorf("canary reject: got %s", v.Reason())
	}
	return nil
}
