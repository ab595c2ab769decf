// Package logscope provides per-execution-unit logging scopes: dynamically
// nested attribute overlays and temporary severity overrides that are
// private to one goroutine or request and invisible to every other.
//
// # Architecture
//
// A Scope is a plain value owned by a single execution unit. It carries a
// LIFO stack of flattened attribute overlays and an optional severity
// override. Scoped entry points (WithAttrs, WithLevel) push state, run a
// body function, and restore the enclosing state on every exit path -
// normal return, error, or panic - so overlays can never outlive their
// scope.
//
// Scopes travel through context.Context (WithContext/FromContext/Ensure),
// following the same pattern the rest of the module uses for
// request-scoped values. Because contexts are per-request and scopes are
// never shared between units, no synchronization is needed or performed.
//
// The package also carries per-emission overrides
// (WithEmissionLevel/WithEmissionLabel): a wrapping logger resolves its
// effective level and label once at the top of an emission and attaches
// them to the context, and the sink honors the attached values instead
// of its own state for that record alone.
//
// # Usage
//
//	ctx, scope := logscope.Ensure(ctx)
//	err := scope.WithAttrs(attrs.Map{"order_id": id}, func() error {
//	    log.Info(ctx, "charging card")  // carries order_id
//	    return scope.WithLevel(severity.Debug, func() error {
//	        log.Debug(ctx, "gateway payload") // visible: debug window
//	        return nil
//	    })
//	})
//
// # Worker Pools
//
// A pooled worker that reuses one scope across logically distinct tasks
// must call Reset between tasks, or stale overlays leak into unrelated
// work. The HTTP Middleware sidesteps this by attaching a fresh scope to
// every request.
//
// # Dropped Tags
//
// MergeActive merges tags into the innermost open overlay. With no open
// overlay there is nothing to attach to; the tags are dropped and the
// method returns false so callers can observe the drop.
package logscope
