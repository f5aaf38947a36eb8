package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("booking not found")
	ErrIntegrity               = errors.New("ambiguous session reference")
	ErrDuplicateSubmission     = errors.New("duplicate submission")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrPaymentIncomplete       = errors.New("payment not completed")
)

// ValidationError carries one message per invalid form field. It never leaves
// the HTTP boundary except as the 400 payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// ExternalServiceError wraps a failed store or provider call with the
// operation that failed. The cause is for logs; handlers show a generic
// message only.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string { return fmt.Sprintf("%s failed: %v", e.Op, e.Err) }

func (e *ExternalServiceError) Unwrap() error { return e.Err }
