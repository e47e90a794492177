package structural

import "reflect"

// PairLike is a two-component key/value datum, such as a map entry.
// Any type implementing it is compared, hashed and printed by its
// components instead of by its own identity, so differently typed
// pairs holding equal keys and values are equal.
type PairLike interface {
	Key() any
	Value() any
}

// Entry is the PairLike the engine uses for Go map entries.
// It can also be used directly by callers that need an ad hoc pair.
type Entry struct {
	K, V any
}

// NewEntry returns an Entry holding key and value.
func NewEntry(key, value any) Entry {
	return Entry{K: key, V: value}
}

func (e Entry) Key() any   { return e.K }
func (e Entry) Value() any { return e.V }

// splitFunc decomposes an interface value of a known pair type.
type splitFunc func(v any) (key, value any)

// RegisterPair teaches e to treat values of the concrete type T as pairs
// without T implementing PairLike. It is meant for pair-shaped types from
// other packages. Registering replaces any cached classification of T.
func RegisterPair[T any](e *Engine, fn func(T) (key, value any)) {
	if fn == nil {
		panic("pair decomposer cannot be nil")
	}

	t := reflect.TypeFor[T]()
	e.shapes.register(t, func(v any) (any, any) {
		return fn(v.(T))
	})
}

// Pair reports whether v is pair shaped and, if so, returns its components.
func (e *Engine) Pair(v any) (key, value any, ok bool) {
	rv := unwrap(reflect.ValueOf(v))
	if isAbsent(rv) {
		return nil, nil, false
	}

	return e.shapes.Of(rv.Type()).split(rv)
}

// split extracts the components of v when its shape is a pair.
// Values reached through unexported fields cannot be handed to the
// decomposer and are reported as not a pair.
func (s *Shape) split(v reflect.Value) (key, value any, ok bool) {
	if s.pair == nil || !v.CanInterface() {
		return nil, nil, false
	}

	key, value = s.pair(v.Interface())

	return key, value, true
}

func splitPairLike(v any) (any, any) {
	p := v.(PairLike)

	return p.Key(), p.Value()
}
