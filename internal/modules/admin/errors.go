package admin

import "errors"

var (
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrNotFound                = errors.New("booking not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
