package logscope

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/logkit/pkg/attrs"
)

// LoggerExtractor returns a context extractor that exposes the active
// scope's attributes to slog handlers. Lazy values are resolved per
// record so dynamic tags reflect the moment of emission.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		scope := FromContext(ctx)
		if scope == nil || !scope.Active() {
			return slog.Attr{}, false
		}
		resolved := attrs.Resolve(scope.Attributes())
		if len(resolved) == 0 {
			return slog.Attr{}, false
		}
		group := make([]any, 0, len(resolved))
		for _, a := range attrs.ToSlog(resolved) {
			group = append(group, a)
		}
		return slog.Group("tags", group...), true
	}
}
