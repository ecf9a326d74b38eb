package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound      = errors.New("score result not found")
	ErrInvalidLimit  = errors.New("invalid at-risk limit")
	ErrInvalidResult = errors.New("score result has no employee id or cycle")
)
