// Package logregistry resolves per-component logger configuration through
// an explicit ancestry chain: each registered component may override the
// parent logger, severity, label, and attribute template, and inherits
// whatever it leaves unset from its named ancestor, terminating at a
// process-wide default parent.
//
// The registry is the explicit replacement for per-class static logger
// state: instead of hiding configuration in type hierarchies, components
// are plain names and inheritance is a lookup that can be inspected and
// tested.
//
// # Resolution Rules
//
// Parent, level, and label resolve to the nearest explicit value walking
// leaf to root. Tag templates are the exception: they merge across the
// whole chain, descendant values winning per key, so a child adds to its
// ancestors' tags rather than replacing them.
//
// Logger(name) memoizes the resolved local logger per component. Any
// setter on a component drops only that component's memo; the next
// Logger call rebuilds it from current configuration. When no entry in
// the chain and no default yields a parent logger, Logger returns nil -
// absence, not an error - and callers must check.
//
// # Usage
//
//	base := logger.New(logger.WithProduction("checkout"))
//	reg := logregistry.New()
//	_ = reg.SetDefaultParent(base)
//
//	reg.Register("app", logregistry.WithTags(attrs.Map{"component": "app"}))
//	reg.Register("app.billing",
//	    logregistry.WithAncestor("app"),
//	    logregistry.WithLevel(severity.Debug),
//	)
//
//	if log := reg.Logger("app.billing"); log != nil {
//	    log.Debug(ctx, "resolved with app's tags and its own level")
//	}
//
// Declarative configuration can be loaded from YAML with LoadYAML or
// LoadFile; invalid severities fail at load time.
//
// # Concurrency
//
// Map access is mutex-guarded because unguarded concurrent map access is
// unsafe. Reconfiguration under concurrent readers is still a semantic
// race: readers observe either the old or the new value. Registration
// and setters are meant for configuration time.
package logregistry
