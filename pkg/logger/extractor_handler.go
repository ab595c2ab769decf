package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context. The boolean
// reports whether an attribute was produced.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextValueExtractor publishes the context value stored under key as
// the named attribute when present.
func contextValueExtractor(name string, key any) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := ctx.Value(key); v != nil {
			return slog.Any(name, v), true
		}
		return slog.Attr{}, false
	}
}

// extractorHandler wraps a slog.Handler and runs the registered
// extractors against every record's context before delegating.
// Extraction happens per log call so request-scoped values stay fresh.
type extractorHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// newExtractorHandler wraps next, filtering nil extractors. With no
// extractors the original handler is returned untouched.
func newExtractorHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	if len(clean) == 0 {
		return next
	}
	return &extractorHandler{next: next, extractors: clean}
}

func (h *extractorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *extractorHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *extractorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &extractorHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *extractorHandler) WithGroup(name string) slog.Handler {
	return &extractorHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
