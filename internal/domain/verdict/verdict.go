package verdict

import (
	"fmt"

	"github.com/kailas-cloud/slotgate/internal/domain/slot"
)

// Outcome is the binary gate decision.
type Outcome string

// Outcome constants.
const (
	Accepted Outcome = "accepted"
	Rejected Outcome = "rejected"
)

// Kind classifies why a document was rejected.
type Kind string

// Rejection kinds. KindNone is used for accepted verdicts.
const (
	KindNone               Kind = ""
	KindConstraintMismatch Kind = "constraint_mismatch"
	KindMissingTargetSlot  Kind = "missing_target_slot"
)

// Verdict is the gate decision for a single document.
type Verdict struct {
	outcome Outcome
	reason  string
	value   string
	kind    Kind
	slot    slot.Name
}

// Accept creates an accepted verdict carrying the value found at the target slot.
func Accept(target slot.Name, label, value string) Verdict {
	return Verdict{
		outcome: Accepted,
		reason:  fmt.Sprintf("found %s: %s", label, value),
		value:   value,
		slot:    target,
	}
}

// MissingTarget creates a rejection for a document lacking the target slot.
func MissingTarget(target slot.Name, label string) Verdict {
	return Verdict{
		outcome: Rejected,
		reason:  "missing target slot: " + label,
		kind:    KindMissingTargetSlot,
		slot:    target,
	}
}

// ConstraintMismatch creates a rejection for a failed required constraint.
func ConstraintMismatch(key slot.Name) Verdict {
	return Verdict{
		outcome: Rejected,
		reason:  "constraint mismatch on " + string(key),
		kind:    KindConstraintMismatch,
		slot:    key,
	}
}

// Outcome returns the decision.
func (v Verdict) Outcome() Outcome { return v.outcome }

// IsAccepted reports whether the document passed the gate.
func (v Verdict) IsAccepted() bool { return v.outcome == Accepted }

// Reason returns a human-readable explanation.
func (v Verdict) Reason() string { return v.reason }

// Value returns the target slot value (accepted verdicts only).
func (v Verdict) Value() string { return v.value }

// Kind returns the rejection kind (KindNone when accepted).
func (v Verdict) Kind() Kind { return v.kind }

// Slot returns the target slot when accepted, or the offending slot when rejected.
func (v Verdict) Slot() slot.Name { return v.slot }
