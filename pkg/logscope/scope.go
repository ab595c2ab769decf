package logscope

import (
	"github.com/dmitrymomot/logkit/pkg/attrs"
	"github.com/dmitrymomot/logkit/pkg/severity"
)

// Scope holds the per-execution-unit logging overlays: a stack of
// attribute maps and an optional severity override. A Scope belongs to
// exactly one goroutine (or one request) and is not safe for concurrent
// use; isolation between concurrent units comes from never sharing one.
type Scope struct {
	stack    []attrs.Map
	override *severity.Severity
}

// New creates an empty scope.
func New() *Scope {
	return &Scope{}
}

// WithAttrs pushes the flattened tags as a new overlay, runs body, and
// pops the overlay on every exit path, including panic. The overlay is
// invisible outside body's dynamic extent. Body's error is returned
// unchanged after cleanup.
func (s *Scope) WithAttrs(tags attrs.Map, body func() error) error {
	s.stack = append(s.stack, attrs.Flatten(tags))
	defer func() {
		s.stack = s.stack[:len(s.stack)-1]
	}()
	return body()
}

// Attributes merges all active overlays outermost to innermost, inner
// entries winning on key conflict, and returns the result as a fresh map.
// It returns an empty map when no scope is active.
func (s *Scope) Attributes() attrs.Map {
	merged := attrs.Map{}
	for _, overlay := range s.stack {
		merged = attrs.Merge(merged, overlay)
	}
	return merged
}

// WithLevel sets the severity override for body's dynamic extent and
// restores the immediately enclosing value, or absence, on every exit
// path. Nested calls shadow each other correctly: each exit reverts to
// the enclosing override, never to the pre-outermost state.
func (s *Scope) WithLevel(level severity.Severity, body func() error) error {
	prev := s.override
	s.override = &level
	defer func() {
		s.override = prev
	}()
	return body()
}

// LevelOverride returns the active severity override, if any.
func (s *Scope) LevelOverride() (severity.Severity, bool) {
	if s.override == nil {
		return 0, false
	}
	return *s.override, true
}

// MergeActive merges the flattened tags into the innermost active overlay
// and returns true. When no attribute scope is active it returns false
// and the tags are dropped: there is nothing for them to attach to. The
// boolean makes the drop observable instead of silent.
func (s *Scope) MergeActive(tags attrs.Map) bool {
	if len(s.stack) == 0 {
		return false
	}
	top := len(s.stack) - 1
	s.stack[top] = attrs.Merge(s.stack[top], attrs.Flatten(tags))
	return true
}

// Active reports whether at least one attribute scope is open.
func (s *Scope) Active() bool {
	return len(s.stack) > 0
}

// Depth returns the number of open attribute scopes.
func (s *Scope) Depth() int {
	return len(s.stack)
}

// Reset drains the scope back to its initial empty state. Pooled workers
// must call it (or use a fresh Scope) between logically distinct tasks so
// stale overlays cannot leak into unrelated work.
func (s *Scope) Reset() {
	s.stack = nil
	s.override = nil
}
