package local

import (
	"context"

	"github.com/dmitrymomot/logkit/pkg/attrs"
	"github.com/dmitrymomot/logkit/pkg/severity"
)

// Leveled is the capability contract shared by every logger in the chain:
// the sink-facing base logger and any Logger wrapping it both satisfy it,
// which is what allows local loggers to wrap each other. Anything outside
// this contract is deliberately a compile-time error rather than a runtime
// forward.
//
// Scoped operations (WithLevel, Tag) thread context.Context through their
// body so overlays attached to the context stay visible inside the scope.
// They restore the enclosing state on every exit path and never swallow
// the body's error.
type Leveled interface {
	// Level returns the logger's current ambient severity threshold.
	Level() severity.Severity
	// SetLevel changes the ambient severity threshold.
	SetLevel(severity.Severity)

	// Label returns the source-identifying string attached to records.
	Label() string
	// SetLabel changes the label.
	SetLabel(string)

	// WithLevel applies level for body's dynamic extent, restoring the
	// prior threshold afterwards regardless of outcome.
	WithLevel(ctx context.Context, level severity.Severity, body func(context.Context) error) error

	// Tag applies the attribute overlay for body's dynamic extent.
	Tag(ctx context.Context, tags attrs.Map, body func(context.Context) error) error

	// Attributes returns the logger's current effective attributes under
	// its own active scopes.
	Attributes(ctx context.Context) attrs.Map

	// Enabled reports whether a record at the given severity would pass
	// the current effective threshold.
	Enabled(ctx context.Context, level severity.Severity) bool

	// Log emits a record at the given severity. Leveled helpers
	// (Debug, Info, ...) are sugar over this method.
	Log(ctx context.Context, level severity.Severity, msg string, tags ...attrs.Map)

	// Append ingests a raw, unformatted message, bypassing level
	// filtering and formatting.
	Append(msg string)
}
