package local

import "errors"

// Package-specific errors
var (
	// ErrNilParent is returned by New when no parent logger is supplied.
	// A local logger is only configuration layered over a parent; without
	// one there is nothing to emit through.
	ErrNilParent = errors.New("nil parent logger")
)
