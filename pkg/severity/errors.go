package severity

import "errors"

// Package-specific errors
var (
	// ErrInvalidSeverity is returned when a value cannot be coerced into a
	// defined severity. It is never recovered from locally; callers decide
	// how to surface it.
	ErrInvalidSeverity = errors.New("invalid severity")
)
