package logger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/logkit/pkg/attrs"
	"github.com/dmitrymomot/logkit/pkg/logscope"
	"github.com/dmitrymomot/logkit/pkg/severity"
)

// Logger is the sink-facing leveled logger the rest of the module wraps.
// It emits through a slog handler, carries a dynamic severity threshold,
// a label, and a static tag set, and supports scoped tag overlays carried
// by context. It satisfies the local.Leveled contract.
//
// The threshold and label are shared mutable state guarded for
// concurrent reads and writes. Local loggers wrapping this instance
// never write either one: their composed level and label ride each
// emission's context (logscope emission carriers) and shadow the ambient
// values per record. A WithLevel window, by contrast, is ambient and
// visible to concurrent emitters, exactly like reconfiguring a
// process-wide logger.
type Logger struct {
	mu       sync.Mutex
	handler  slog.Handler
	levelVar *slog.LevelVar
	label    string
	static   attrs.Map
	out      io.Writer
}

// tagsKey keys scoped tag overlays per logger instance, so two base
// loggers sharing one context never observe each other's overlays.
type tagsKey struct{ l *Logger }

// Level returns the current ambient severity threshold.
func (l *Logger) Level() severity.Severity {
	return severity.FromSlog(l.levelVar.Level())
}

// SetLevel changes the ambient severity threshold. The handler picks the
// new value up immediately via the shared LevelVar.
func (l *Logger) SetLevel(level severity.Severity) {
	l.levelVar.Set(level.Level())
}

// Label returns the source-identifying string attached to records.
func (l *Logger) Label() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.label
}

// SetLabel changes the label attached to subsequent records.
func (l *Logger) SetLabel(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.label = label
}

// WithLevel applies level for body's dynamic extent and restores the
// prior threshold on every exit path. The window is ambient: anything
// logging through this instance during body observes it.
func (l *Logger) WithLevel(ctx context.Context, level severity.Severity, body func(context.Context) error) error {
	prev := l.levelVar.Level()
	l.levelVar.Set(level.Level())
	defer l.levelVar.Set(prev)
	return body(ctx)
}

// Tag applies the flattened tags for body's dynamic extent. The overlay
// rides the derived context, so it vanishes with the context and never
// needs explicit cleanup, and concurrent requests cannot observe each
// other's overlays.
func (l *Logger) Tag(ctx context.Context, tags attrs.Map, body func(context.Context) error) error {
	current, _ := ctx.Value(tagsKey{l}).(attrs.Map)
	merged := attrs.Merge(current, attrs.Flatten(tags))
	return body(context.WithValue(ctx, tagsKey{l}, merged))
}

// Attributes returns the static tags merged with any overlay active on
// ctx, overlay values winning per key.
func (l *Logger) Attributes(ctx context.Context) attrs.Map {
	overlay, _ := ctx.Value(tagsKey{l}).(attrs.Map)
	return attrs.Merge(l.static, overlay)
}

// Enabled reports whether a record at the given severity would be
// emitted: against the threshold a composed emission carries on ctx when
// present, else against the ambient threshold.
func (l *Logger) Enabled(ctx context.Context, level severity.Severity) bool {
	if threshold, ok := logscope.EmissionLevel(ctx); ok {
		return severity.Compare(level, threshold) >= 0
	}
	return l.handler.Enabled(ctx, level.Level())
}

// Log emits a record at the given severity, attaching the label, the
// static tags, any context overlay, and the per-call tags. Lazy values
// resolve here, once per record.
func (l *Logger) Log(ctx context.Context, level severity.Severity, msg string, tags ...attrs.Map) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Enabled(ctx, level) {
		return
	}

	merged := l.Attributes(ctx)
	for _, t := range tags {
		merged = attrs.Merge(merged, attrs.Flatten(t))
	}
	merged = attrs.Resolve(merged)

	rec := slog.NewRecord(time.Now(), level.Level(), msg, 0)
	label, ok := logscope.EmissionLabel(ctx)
	if !ok {
		label = l.Label()
	}
	if label != "" {
		rec.AddAttrs(slog.String("logger", label))
	}
	rec.AddAttrs(attrs.ToSlog(merged)...)
	_ = l.handler.Handle(ctx, rec)
}

// Append writes a raw message straight to the output, bypassing level
// filtering and formatting. A trailing newline is added when missing.
func (l *Logger) Append(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	_, _ = io.WriteString(l.out, msg)
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
// process.
func (l *Logger) Fatal(ctx context.Context, msg string, tags ...attrs.Map) {
	l.Log(ctx, severity.Fatal, msg, tags...)
}

// Unknown emits a record at Unknown severity, which passes every
// threshold.
func (l *Logger) Unknown(ctx context.Context, msg string, tags ...attrs.Map) {
	l.Log(ctx, severity.Unknown, msg, tags...)
}

// replaceLevelNames renders Fatal and Unknown with their severity names
// instead of slog's "ERROR+4" notation.
func replaceLevelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(severity.FromSlog(lvl).String())
		}
	}
	return a
}
