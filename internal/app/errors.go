package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted        = errors.New("service not started")
	ErrImportUnavailable = errors.New("no record source configured")
	ErrUnknownMode       = errors.New("unknown consultation mode")
	ErrInvalidRequest    = errors.New("invalid request")
)
