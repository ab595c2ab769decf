// Package local implements the local logger: a wrapper that behaves like
// its parent logger - writing to the same destination - while locally
// overriding the severity threshold, the label, and a set of structured
// attributes, without mutating or duplicating the parent's configuration.
//
// # Architecture
//
// The package defines the Leveled contract both ends of the chain
// implement. A Logger holds exactly one parent Leveled reference (shared,
// never copied - several local loggers may wrap the same parent, and the
// parent may outlive all of them) plus three optional pieces of local
// state: a severity override, a label, and a permanent attribute
// template.
//
// On every emission the Logger composes its effective configuration and
// carries it down the chain for exactly the duration of the call: the
// effective level and label ride the emission's context (logscope
// emission carriers), the resolved local attributes ride a parent
// attribute scope, and the sink gates and labels the record from the
// carried values. The parent's own configuration is never written, so
// chained loggers keep their deferral state and concurrent emissions
// through a shared parent cannot observe each other's overrides.
//
// Effective level precedence, strongest first:
//
//  1. the execution unit's scope override (logscope), so a temporary
//     debug window wins even over a permanently configured local level
//  2. the constructor-level local override
//  3. the parent's ambient level
//
// # Usage
//
//	base := logger.New(logger.WithLevel(severity.Warn))
//	log, err := local.New(base,
//	    local.WithLevel(severity.Debug),
//	    local.WithLabel("billing"),
//	    local.WithTags(attrs.Map{"component": "billing"}),
//	)
//	if err != nil { ... }
//
//	log.Debug(ctx, "charge attempt")   // emitted: local Debug wins
//	base.Log(ctx, severity.Debug, "x") // dropped: base still at Warn
//
//	// Temporary debug window on this logger and the parent alike:
//	_ = log.WithLevel(ctx, severity.Debug, func(ctx context.Context) error {
//	    ...
//	    return nil
//	})
//
// # Dropped Tags
//
// TagActive merges tags into the currently open attribute scope. When no
// scope is open the tags have nothing to attach to and are dropped;
// TagActive returns false to make the drop observable. Use Tag with a
// body to open a scope instead.
package local
