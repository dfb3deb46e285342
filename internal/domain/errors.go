package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSlotName signals a slot name outside the who/what/when/where/why/how vocabulary.
	ErrInvalidSlotName = errors.New("invalid slot name")
	// ErrInvalidQuery signals a malformed query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidDocument signals a malformed document.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidMatchStrategy signals an unknown constraint matching strategy.
	ErrInvalidMatchStrategy = errors.New("invalid match strategy")
)

// InvalidSlotNameError wraps ErrInvalidSlotName with the rejected name.
type InvalidSlotNameError struct {
	Name string
}

func (e *InvalidSlotNameError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidSlotName.Error(), e.Name)
}

func (e *InvalidSlotNameError) Unwrap() error { return ErrInvalidSlotName }

// NewInvalidSlotName creates an invalid slot name error.
func NewInvalidSlotName(name string) error {
	return &InvalidSlotNameError{Name: name}
}
