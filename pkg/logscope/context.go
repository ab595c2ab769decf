package logscope

import "context"

type contextKey struct{}

// WithContext returns a context carrying the given scope.
func WithContext(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, scope)
}

// FromContext returns the scope carried by ctx, or nil if none is
// attached. A nil context yields nil.
func FromContext(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	scope, ok := ctx.Value(contextKey{}).(*Scope)
	if !ok {
		return nil
	}
	return scope
}

// Ensure returns ctx's scope, attaching a fresh one first when absent.
// This is the lazy creation point: units of work get a scope only once
// they actually need one.
func Ensure(ctx context.Context) (context.Context, *Scope) {
	if scope := FromContext(ctx); scope != nil {
		return ctx, scope
	}
	scope := New()
	return WithContext(ctx, scope), scope
}
