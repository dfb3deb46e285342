package document

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/slotgate/internal/domain"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// MaxTextSize is the maximum raw text size in bytes.
const MaxTextSize = 163840 // 160KB

// Document is a retrieval candidate with its extracted 5W1H slots (immutable value object).
type Document struct {
	id    string
	text  string
	slots slot.Set
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_.:-]+$, 1-256 chars. Text is opaque to the gate and may be empty.
func New(id, text string, slots slot.Set) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidDocument)
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("%w: document ID too long (max 256)", domain.ErrInvalidDocument)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf(
			"%w: document ID must be alphanumeric with underscores, dots, colons and hyphens",
			domain.ErrInvalidDocument,
		)
	}
	if len(text) > MaxTextSize {
		return Document{}, fmt.Errorf("%w: text too large (max %d bytes)", domain.ErrInvalidDocument, MaxTextSize)
	}
	return Document{id: id, text: text, slots: slots}, nil
}

// Reconstruct creates a Document without validation.
func Reconstruct(id, text string, slots slot.Set) Document {
	return Document{id: id, text: text, slots: slots}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Text returns the raw document text.
func (d Document) Text() string { return d.text }

// Slots returns the extracted slot set.
func (d Document) Slots() slot.Set { return d.slots }
