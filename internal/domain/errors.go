package domain

import "errors"

// Error taxonomy for the marketplace core. Callers classify failures with
// errors.Is; the API layer maps them onto HTTP status codes.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrDuplicate   = errors.New("duplicate")
	ErrForbidden   = errors.New("forbidden")
	ErrPersistence = errors.New("persistence failure")
)
