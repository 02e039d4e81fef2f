package domain

import "errors"

// Error kinds returned by services and repositories. Callers match with
// errors.Is; wrapped errors keep the underlying detail.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrNotOwner          = errors.New("ticket belongs to another user")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrConflict          = errors.New("conflicting records exist")
	ErrTransientFailure  = errors.New("transient failure, retry")
	ErrStorage           = errors.New("storage failure")
)
