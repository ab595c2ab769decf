package attrs

import (
	"log/slog"
	"sort"
	"strings"
)

// Separator joins nested attribute keys into dotted paths
// (e.g. {"user": {"id": 1}} flattens to "user.id").
const Separator = "."

// Map is a string-keyed attribute collection attached to log records.
// Values are arbitrary; nested Map (or map[string]any) values are expanded
// by Flatten, and Lazy values are evaluated by Resolve at emission time.
type Map map[string]any

// Lazy is a zero-argument callable leaf. It is carried through Flatten and
// Merge untouched and evaluated once per log call by Resolve, so dynamic
// values are computed in the calling context rather than at setup.
type Lazy func() any

// Flatten expands nested mapping values into dotted keys and returns a new
// map. Non-mapping values, including callables, are left as leaves
// unevaluated. Flatten is idempotent: flattening an already-flat map
// yields an equal map.
func Flatten(raw Map) Map {
	out := make(Map, len(raw))
	flattenInto(out, "", raw)
	return out
}

func flattenInto(out Map, prefix string, raw Map) {
	for k, v := range raw {
		key := k
		if prefix != "" {
			key = prefix + Separator + k
		}
		switch nested := v.(type) {
		case Map:
			flattenInto(out, key, nested)
		case map[string]any:
			flattenInto(out, key, Map(nested))
		default:
			out[key] = v
		}
	}
}

// Merge returns a new map holding base's entries overlaid with overlay's.
// Overlay values win on key conflict. Neither argument is mutated, so a
// logger's stored tag template is never corrupted by a transient merge.
func Merge(base, overlay Map) Map {
	out := make(Map, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Delete returns a copy of m without the given top-level dotted keys.
// Keys must match exactly: deleting "user" does not remove "user.id".
func Delete(m Map, keys ...string) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Resolve returns a copy of m with every callable leaf replaced by its
// result. Both Lazy and bare func() any leaves are invoked. All other
// values are carried over unchanged.
func Resolve(m Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		switch fn := v.(type) {
		case Lazy:
			out[k] = fn()
		case func() any:
			out[k] = fn()
		default:
			out[k] = v
		}
	}
	return out
}

// Keys returns the map's keys in sorted order for deterministic iteration.
func Keys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToSlog converts the map to slog attributes in sorted key order.
// Callables are not evaluated here; call Resolve first when emitting.
func ToSlog(m Map) []slog.Attr {
	out := make([]slog.Attr, 0, len(m))
	for _, k := range Keys(m) {
		out = append(out, slog.Any(k, m[k]))
	}
	return out
}

// HasPrefix reports whether key sits under the given dotted namespace
// (e.g. HasPrefix("user.id", "user") is true). An empty namespace matches
// every key.
func HasPrefix(key, namespace string) bool {
	if namespace == "" {
		return true
	}
	return key == namespace || strings.HasPrefix(key, namespace+Separator)
}
