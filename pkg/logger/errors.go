package logger

import "errors"

// Package-specific errors
var (
	// ErrEnvConfig is returned when the environment-driven configuration
	// cannot be parsed or holds an unrecognized value. Configuration
	// failures surface at construction, never at the first log call.
	ErrEnvConfig = errors.New("invalid logger environment configuration")
)
