package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestInvalidSlotNameError_Is(t *testing.T) {
	err := NewInvalidSlotName("whom")
	if !errors.Is(err, ErrInvalidSlotName) {
		t.Fatal("errors.Is(err, ErrInvalidSlotName) = false")
	}
	var ise *InvalidSlotNameError
	if !errors.As(err, &ise) {
		t.Fatal("errors.As failed")
	}
	if ise.Name != "whom" {
		t.Errorf("Name = %q, want whom", ise.Name)
	}
	if !strings.Contains(err.Error(), `"whom"`) {
		t.Errorf("Error() = %q", err.Error())
	}
}
