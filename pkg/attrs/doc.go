// Package attrs implements the attribute map carried on log records:
// a string-keyed collection with flatten, merge, delete, and lazy-value
// resolution semantics.
//
// # Usage
//
//	tags := attrs.Flatten(attrs.Map{
//	    "user": attrs.Map{"id": 1, "role": "admin"},
//	    "took": attrs.Lazy(func() any { return time.Since(start) }),
//	})
//	// tags: {"user.id": 1, "user.role": "admin", "took": <lazy>}
//
//	merged := attrs.Merge(tags, attrs.Map{"user.role": "owner"})
//	final := attrs.Resolve(merged) // lazy leaves evaluated here
//
// # Semantics
//
// Flatten joins nested map keys with "." and is idempotent. Merge is
// right-biased and never mutates its arguments. Delete removes exact
// top-level dotted keys only, never partial prefixes. Resolve evaluates
// callable leaves once per call, so dynamic values reflect the moment of
// emission rather than the moment of configuration.
//
// Maps are plain Go maps and therefore unordered; ToSlog and Keys
// normalize to sorted key order wherever deterministic output matters.
package attrs
