package local

import (
	"context"

	"github.com/dmitrymomot/logkit/pkg/attrs"
	"github.com/dmitrymomot/logkit/pkg/logscope"
	"github.com/dmitrymomot/logkit/pkg/severity"
)

// Logger wraps a parent Leveled logger, locally overriding its severity
// threshold, label, and attribute template without touching the parent's
// own configuration. Many Loggers may share one parent, and a Logger is
// itself a Leveled, so loggers chain.
//
// Permanent-state mutators (SetLevel, SetLabel, AddTags, RemoveTags) are
// configuration-time operations and are not synchronized; callers that
// reconfigure concurrently must serialize externally.
type Logger struct {
	parent Leveled
	level  *severity.Severity
	label  string
	tags   attrs.Map
}

// Option configures Logger construction.
type Option func(*Logger)

// WithLevel sets the constructor-level severity override.
func WithLevel(level severity.Severity) Option {
	return func(l *Logger) {
		lvl := level
		l.level = &lvl
	}
}

// WithLabel sets the local label. The empty string means "defer to the
// parent's label".
func WithLabel(label string) Option {
	return func(l *Logger) {
		l.label = label
	}
}

// WithTags sets the permanent attribute template. Tags are flattened on
// the way in.
func WithTags(tags attrs.Map) Option {
	return func(l *Logger) {
		l.tags = attrs.Flatten(tags)
	}
}

// New creates a Logger deferring to parent for everything not overridden
// by options. A nil parent fails fast with ErrNilParent.
func New(parent Leveled, opts ...Option) (*Logger, error) {
	if parent == nil {
		return nil, ErrNilParent
	}
	l := &Logger{parent: parent}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Parent returns the wrapped parent logger.
func (l *Logger) Parent() Leveled {
	return l.parent
}

// EffectiveLevel resolves the severity threshold applied to this logger's
// emissions: an active scope override wins over the constructor-level
// local override, which wins over the parent's ambient level. A scope
// override always shadows a permanent level change made during the same
// scope, for the scope's full dynamic extent.
func (l *Logger) EffectiveLevel(ctx context.Context) severity.Severity {
	if scope := logscope.FromContext(ctx); scope != nil {
		if lvl, ok := scope.LevelOverride(); ok {
			return lvl
		}
	}
	if l.level != nil {
		return *l.level
	}
	return l.parent.Level()
}

// Level returns the local severity override when set, else the parent's
// ambient level. Scope overrides are not consulted; use EffectiveLevel
// for emission decisions.
func (l *Logger) Level() severity.Severity {
	if l.level != nil {
		return *l.level
	}
	return l.parent.Level()
}

// SetLevel sets the constructor-level local override. It does not touch
// any active scope override, which continues to shadow it.
func (l *Logger) SetLevel(level severity.Severity) {
	lvl := level
	l.level = &lvl
}

// ClearLevel removes the local override, reverting to the parent's level.
func (l *Logger) ClearLevel() {
	l.level = nil
}

// WithLevel applies level for body's dynamic extent both to this logger
// (via a scope override) and to the parent's ambient level, so code that
// logs directly to the parent during the window is affected too. Both
// revert to their prior values on every exit path.
func (l *Logger) WithLevel(ctx context.Context, level severity.Severity, body func(context.Context) error) error {
	ctx, scope := logscope.Ensure(ctx)
	return l.parent.WithLevel(ctx, level, func(ctx context.Context) error {
		return scope.WithLevel(level, func() error {
			return body(ctx)
		})
	})
}

// WithLocalLevel applies level for body's dynamic extent to this logger
// only; the parent's ambient level is untouched throughout.
func (l *Logger) WithLocalLevel(ctx context.Context, level severity.Severity, body func(context.Context) error) error {
	ctx, scope := logscope.Ensure(ctx)
	return scope.WithLevel(level, func() error {
		return body(ctx)
	})
}

// Silence raises the threshold to Error for body's dynamic extent,
// muting everything below it on this logger and the parent alike.
func (l *Logger) Silence(ctx context.Context, body func(context.Context) error) error {
	return l.WithLevel(ctx, severity.Error, body)
}

// EffectiveLabel returns the local label when set, else the parent's.
func (l *Logger) EffectiveLabel() string {
	if l.label != "" {
		return l.label
	}
	return l.parent.Label()
}

// Label is EffectiveLabel under the Leveled contract.
func (l *Logger) Label() string {
	return l.EffectiveLabel()
}

// SetLabel sets the local label. The empty string reverts to the
// parent's label.
func (l *Logger) SetLabel(label string) {
	l.label = label
}

// ClearLabel removes the local label, reverting to the parent's.
func (l *Logger) ClearLabel() {
	l.label = ""
}

// Tag pushes a scoped attribute overlay for body's dynamic extent. The
// overlay is carried by the execution unit's scope and therefore visible
// to every logger consulting that scope, and to no other unit.
func (l *Logger) Tag(ctx context.Context, tags attrs.Map, body func(context.Context) error) error {
	ctx, scope := logscope.Ensure(ctx)
	return scope.WithAttrs(tags, func() error {
		return body(ctx)
	})
}

// TagActive merges tags into the currently active attribute scope and
// returns true. With no active scope the tags are dropped and TagActive
// returns false. The drop mirrors the historical bare-tag behavior; the
// return value exists so callers never mistake it for a successful tag.
func (l *Logger) TagActive(ctx context.Context, tags attrs.Map) bool {
	scope := logscope.FromContext(ctx)
	if scope == nil {
		return false
	}
	return scope.MergeActive(tags)
}

// AddTags merges tags into the permanent attribute template.
func (l *Logger) AddTags(tags attrs.Map) {
	l.tags = attrs.Merge(l.tags, attrs.Flatten(tags))
}

// RemoveTags deletes the named top-level dotted keys from the permanent
// template.
func (l *Logger) RemoveTags(names ...string) {
	l.tags = attrs.Delete(l.tags, names...)
}

// LocalAttributes returns the attributes this logger contributes on its
// own: the active scope overlay when one is open, else the permanent
// template, else an empty map. Parent attributes are never included.
func (l *Logger) LocalAttributes(ctx context.Context) attrs.Map {
	if scope := logscope.FromContext(ctx); scope != nil && scope.Active() {
		return scope.Attributes()
	}
	if len(l.tags) > 0 {
		return attrs.Merge(nil, l.tags)
	}
	return attrs.Map{}
}

// AllAttributes merges this logger's local attributes over the parent's
// current attribute set, local values winning per key.
func (l *Logger) AllAttributes(ctx context.Context) attrs.Map {
	return attrs.Merge(l.parent.Attributes(ctx), l.LocalAttributes(ctx))
}

// Attributes is AllAttributes under the Leveled contract.
func (l *Logger) Attributes(ctx context.Context) attrs.Map {
	return l.AllAttributes(ctx)
}

// Enabled reports whether a record at the given severity passes the
// effective threshold. No parent round trip is needed.
func (l *Logger) Enabled(ctx context.Context, level severity.Severity) bool {
	return severity.Compare(level, l.EffectiveLevel(ctx)) >= 0
}

// Log emits through the parent as one composed operation: the record is
// gated by this logger's effective level and carries its effective label
// and resolved local attributes. Level and label ride the emission's
// context down the chain (the outermost logger's values win), so the
// parent's own threshold and label are never written and concurrent
// emissions through a shared parent cannot observe each other.
func (l *Logger) Log(ctx context.Context, level severity.Severity, msg string, tags ...attrs.Map) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := logscope.EmissionLevel(ctx); !ok {
		ctx = logscope.WithEmissionLevel(ctx, l.EffectiveLevel(ctx))
	}
	if _, ok := logscope.EmissionLabel(ctx); !ok {
		ctx = logscope.WithEmissionLabel(ctx, l.EffectiveLabel())
	}
	_ = l.parent.Tag(ctx, attrs.Resolve(l.LocalAttributes(ctx)), func(ctx context.Context) error {
		l.parent.Log(ctx, level, msg, tags...)
		return nil
	})
}

// Append forwards raw message ingestion to the parent unchanged.
func (l *Logger) Append(msg string) {
	l.parent.Append(msg)
}

// Debug emits a record at Debug severity.
func (l *Logger) Debug(ctx context.Context, msg string, tags ...attrs.Map) {
	l.Log(ctx, severity.Debug, msg, tags...)
}

// Info emits a record at Info severity.
func (l *Logger) Info(ctx context.Context, msg string, tags ...attrs.Map) {
	l.Log(ctx, severity.Info, msg, tags...)
}

// Warn emits a record at Warn severity.
func (l *Logger) Warn(ctx context.Context, msg string, tags ...attrs.Map) {
	l.Log(ctx, severity.Warn, msg, tags...)
}

// Error emits a record at Error severity.
func (l *Logger) Error(ctx context.Context, msg string, tags ...attrs.Map) {
	l.Log(ctx, severity.Error, msg, tags...)
}

// Fatal emits a record at Fatal severity. It does not terminate the
// process; exiting is the caller's decision.
func (l *Logger) Fatal(ctx context.Context, msg string, tags ...attrs.Map) {
	l.Log(ctx, severity.Fatal, msg, tags...)
}

// Unknown emits a record at Unknown severity, which passes every
// threshold.
func (l *Logger) Unknown(ctx context.Context, msg string, tags ...attrs.Map) {
	l.Log(ctx, severity.Unknown, msg, tags...)
}

var _ Leveled = (*Logger)(nil)
