package config

import "errors"

// Sentinel errors. Load and Validate wrap them so callers can use errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	ErrWatchConfig   = errors.New("watch config failed")
)
