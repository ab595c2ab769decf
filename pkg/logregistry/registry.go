package logregistry

import (
	"sync"

	"github.com/dmitrymomot/logkit/pkg/attrs"
	"github.com/dmitrymomot/logkit/pkg/local"
	"github.com/dmitrymomot/logkit/pkg/severity"
)

// entry is the per-component configuration record: an optional parent
// logger, severity, label, and tag template, plus the memoized resolved
// local logger and the name of the ancestor entry unset fields inherit
// from.
type entry struct {
	ancestor string
	parent   local.Leveled
	level    *severity.Severity
	label    string
	tags     attrs.Map
	memo     *local.Logger
}

// Registry maps component names to logger configuration, resolving unset
// fields through an explicit ancestor chain and falling back to a
// process-wide default parent. It replaces implicit per-class inheritance
// with a lookup that can be constructed, inspected, and tested directly.
//
// Map access is guarded by a read-write mutex because unguarded
// concurrent map access is unsafe in Go. The guard does not make
// reconfiguration under concurrent readers transactional: a reader may
// observe either the old or the new configuration. Setters are
// configuration-time operations.
type Registry struct {
	mu            sync.RWMutex
	entries       map[string]*entry
	defaultParent local.Leveled
	defaultSet    bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Default is the process-wide registry most applications share.
var Default = New()

// Option configures a component registration.
type Option func(*entry)

// WithAncestor names the entry unset fields are inherited from. The
// chain terminates at the first entry without an ancestor, or with an
// unregistered ancestor name.
func WithAncestor(name string) Option {
	return func(e *entry) { e.ancestor = name }
}

// WithParent sets the component's parent logger explicitly.
func WithParent(parent local.Leveled) Option {
	return func(e *entry) { e.parent = parent }
}

// WithLevel sets the component's severity override.
func WithLevel(level severity.Severity) Option {
	return func(e *entry) {
		lvl := level
		e.level = &lvl
	}
}

// WithLabel sets the component's label override.
func WithLabel(label string) Option {
	return func(e *entry) { e.label = label }
}

// WithTags sets the component's attribute template. Templates merge down
// the ancestor chain, descendant values winning per key.
func WithTags(tags attrs.Map) Option {
	return func(e *entry) { e.tags = attrs.Flatten(tags) }
}

// Register creates or replaces the configuration for name and drops its
// memoized logger.
func (r *Registry) Register(name string, opts ...Option) {
	e := &entry{}
	for _, opt := range opts {
		opt(e)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = e
}

// ensure returns the entry for name, creating an empty one when absent.
// Callers must hold the write lock.
func (r *Registry) ensure(name string) *entry {
	e, ok := r.entries[name]
	if !ok {
		e = &entry{}
		r.entries[name] = e
	}
	return e
}

// SetParent stores a parent logger for name and invalidates only that
// component's memoized logger; descendants keep theirs until their own
// fields change.
func (r *Registry) SetParent(name string, parent local.Leveled) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.ensure(name)
	e.parent = parent
	e.memo = nil
}

// SetLevel stores a severity override for name and invalidates its
// memoized logger.
func (r *Registry) SetLevel(name string, level severity.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.ensure(name)
	lvl := level
	e.level = &lvl
	e.memo = nil
}

// ClearLevel removes the severity override for name, reverting to
// inheritance, and invalidates its memoized logger.
func (r *Registry) ClearLevel(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.ensure(name)
	e.level = nil
	e.memo = nil
}

// SetLabel stores a label override for name and invalidates its
// memoized logger.
func (r *Registry) SetLabel(name string, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.ensure(name)
	e.label = label
	e.memo = nil
}

// SetTags stores the attribute template for name and invalidates its
// memoized logger.
func (r *Registry) SetTags(name string, tags attrs.Map) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.ensure(name)
	e.tags = attrs.Flatten(tags)
	e.memo = nil
}

// SetDefaultParent sets the process-wide fallback parent used when no
// entry in a component's chain carries one. It may be set once; further
// calls fail with ErrDefaultParentSet.
func (r *Registry) SetDefaultParent(parent local.Leveled) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.defaultSet {
		return ErrDefaultParentSet
	}
	r.defaultParent = parent
	r.defaultSet = true
	return nil
}

// chain returns the entries from name up to the chain's root, leaf
// first. A revisited name terminates the walk, so a configuration cycle
// degrades into a finite chain instead of a hang.
func (r *Registry) chain(name string) []*entry {
	var out []*entry
	seen := make(map[string]bool)
	for name != "" && !seen[name] {
		seen[name] = true
		e, ok := r.entries[name]
		if !ok {
			break
		}
		out = append(out, e)
		name = e.ancestor
	}
	return out
}

// ResolveParent walks the ancestor chain for the nearest explicit parent
// logger, falling back to the process-wide default. A nil result means
// no logger is reachable; that is absence, not an error.
func (r *Registry) ResolveParent(name string) local.Leveled {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveParent(name)
}

func (r *Registry) resolveParent(name string) local.Leveled {
	for _, e := range r.chain(name) {
		if e.parent != nil {
			return e.parent
		}
	}
	return r.defaultParent
}

// ResolveLevel walks the ancestor chain for the nearest explicit
// severity override.
func (r *Registry) ResolveLevel(name string) (severity.Severity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLevel(name)
}

func (r *Registry) resolveLevel(name string) (severity.Severity, bool) {
	for _, e := range r.chain(name) {
		if e.level != nil {
			return *e.level, true
		}
	}
	return 0, false
}

// ResolveLabel walks the ancestor chain for the nearest explicit label.
func (r *Registry) ResolveLabel(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLabel(name)
}

func (r *Registry) resolveLabel(name string) (string, bool) {
	for _, e := range r.chain(name) {
		if e.label != "" {
			return e.label, true
		}
	}
	return "", false
}

// ResolveTags merges the attribute templates along the whole chain,
// descendant values winning per key. Unlike the other fields, templates
// accumulate instead of short-circuiting at the nearest override.
func (r *Registry) ResolveTags(name string) attrs.Map {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveTags(name)
}

func (r *Registry) resolveTags(name string) attrs.Map {
	chain := r.chain(name)
	merged := attrs.Map{}
	for i := len(chain) - 1; i >= 0; i-- {
		merged = attrs.Merge(merged, chain[i].tags)
	}
	return merged
}

// Logger returns the component's resolved local logger, building and
// memoizing it on first access. It returns nil when no parent logger is
// reachable through the chain or the default; callers must handle the
// absent logger explicitly.
func (r *Registry) Logger(name string) *local.Logger {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.ensure(name)
	if e.memo != nil {
		return e.memo
	}

	parent := r.resolveParent(name)
	if parent == nil {
		return nil
	}

	var opts []local.Option
	if lvl, ok := r.resolveLevel(name); ok {
		opts = append(opts, local.WithLevel(lvl))
	}
	if label, ok := r.resolveLabel(name); ok {
		opts = append(opts, local.WithLabel(label))
	}
	if tags := r.resolveTags(name); len(tags) > 0 {
		opts = append(opts, local.WithTags(tags))
	}

	log, err := local.New(parent, opts...)
	if err != nil {
		// Unreachable: parent is non-nil by construction.
		return nil
	}
	e.memo = log
	return log
}
