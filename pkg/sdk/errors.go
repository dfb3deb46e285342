package slotgate

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/slotgate/internal/domain"
	"github.com/kailas-cloud/slotgate/internal/transport/api"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidSlotName      = domain.ErrInvalidSlotName
	ErrInvalidQuery         = domain.ErrInvalidQuery
	ErrInvalidDocument      = domain.ErrInvalidDocument
	ErrInvalidMatchStrategy = domain.ErrInvalidMatchStrategy

	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrServer       = errors.New("server error")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slotgate: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the server error code to a sentinel.
func (e *APIError) Unwrap() error {
	switch api.ErrorResponseCode(e.Code) {
	case api.ErrorResponseCodeInvalidSlotName:
		return ErrInvalidSlotName
	case api.ErrorResponseCodeInvalidMatch:
		return ErrInvalidMatchStrategy
	case api.ErrorResponseCodeUnauthorized:
		return ErrUnauthorized
	case api.ErrorResponseCodeBadRequest:
		return ErrBadRequest
	}
	if e.StatusCode >= 500 {
		return ErrServer
	}
	return nil
}

// Is matches validation failures against both query and document sentinels,
// since the server reports them with one code.
func (e *APIError) Is(target error) bool {
	if api.ErrorResponseCode(e.Code) != api.ErrorResponseCodeValidationFailed {
		return false
	}
	return target == ErrInvalidQuery || target == ErrInvalidDocument
}
