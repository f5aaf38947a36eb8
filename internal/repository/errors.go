package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches zero rows.
	ErrNotFound = errors.New("record not found")
	// ErrIntegrity is returned when a lookup that must match at most one row
	// matches several (a data-integrity violation, never silently resolved).
	ErrIntegrity = errors.New("ambiguous match")
)
