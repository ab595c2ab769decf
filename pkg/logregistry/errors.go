package logregistry

import "errors"

// Package-specific errors
var (
	// ErrDefaultParentSet is returned when the process-wide default
	// parent logger is assigned a second time.
	ErrDefaultParentSet = errors.New("default parent logger already set")

	// ErrConfigParse is returned when a declarative registry
	// configuration cannot be parsed or holds an invalid value.
	ErrConfigParse = errors.New("invalid registry configuration")
)
