package service

import "errors"

var (
	// ErrValidation marks input rejected before touching storage.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when creating a singleton that already exists.
	ErrConflict = errors.New("already exists")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
