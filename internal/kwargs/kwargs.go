package kwargs

import "reflect"

// Field describes a single tunable of a handler variant: its wire name, the
// default the downstream framework documents for it, and the value currently
// held by the bundle.
type Field struct {
	Name    string
	Default any
	Value   any
}

// Handler is implemented by option bundles whose non-default fields are
// translated into keyword arguments for an external API. Fields returns the
// variant's static field table in declaration order.
type Handler interface {
	Fields() []Field
}

// ToKwargs computes the sparse override mapping for a bundle: every field
// whose current value differs from its declared default, keyed by wire name.
// A bundle holding only defaults yields an empty map. The comparison is by
// value equality, so a field explicitly set to a value equal to its default
// is excluded.
func ToKwargs(h Handler) map[string]any {
	out := make(map[string]any)
	for _, f := range h.Fields() {
		if !equal(f.Value, f.Default) {
			out[f.Name] = f.Value
		}
	}
	return out
}

// equal reports value equality between a field's current value and its
// default. reflect.DeepEqual already gives the semantics we need for every
// field type that appears in a bundle: numeric and boolean value equality,
// pointer/slice/map structural equality, and func values equal only when
// both are nil.
func equal(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	return reflect.DeepEqual(a, b)
}
