package logscope

import (
	"context"

	"github.com/dmitrymomot/logkit/pkg/severity"
)

type emissionLevelKey struct{}

type emissionLabelKey struct{}

// WithEmissionLevel attaches a per-emission severity threshold to ctx. A
// wrapping logger resolves its effective level once at the top of an
// emission and carries it down the chain this way, so the sink gates the
// record against the wrapper's threshold without the wrapper touching the
// sink's own configuration.
func WithEmissionLevel(ctx context.Context, level severity.Severity) context.Context {
	return context.WithValue(ctx, emissionLevelKey{}, level)
}

// EmissionLevel returns the per-emission threshold carried by ctx, if
// any. A nil context carries none.
func EmissionLevel(ctx context.Context) (severity.Severity, bool) {
	if ctx == nil {
		return 0, false
	}
	level, ok := ctx.Value(emissionLevelKey{}).(severity.Severity)
	return level, ok
}

// WithEmissionLabel attaches a per-emission label to ctx, overriding the
// sink's own label for records emitted under this context.
func WithEmissionLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, emissionLabelKey{}, label)
}

// EmissionLabel returns the per-emission label carried by ctx, if any.
// A nil context carries none.
func EmissionLabel(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	label, ok := ctx.Value(emissionLabelKey{}).(string)
	return label, ok
}
