package structural

import "reflect"

// Engine computes structural equality, hashes and canonical strings.
// An Engine is safe for concurrent use.
type Engine struct {
	shapes *ShapeCache
}

// Option configures an Engine.
type Option func(*Engine)

// WithShapeCache makes the engine use c instead of a private cache.
// Engines sharing a cache also share pair registrations.
func WithShapeCache(c *ShapeCache) Option {
	return func(e *Engine) {
		if c != nil {
			e.shapes = c
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.shapes == nil {
		e.shapes = NewShapeCache()
	}

	return e
}

// Shapes returns the cache the engine classifies types with.
func (e *Engine) Shapes() *ShapeCache {
	return e.shapes
}

// Default is the engine behind the package-level functions and the code
// emitted by immutable-gen unless it is configured with another engine.
var Default = New()

// Equal reports whether a and b are structurally equal using Default.
func Equal(a, b any) bool { return Default.Equal(a, b) }

// Hash returns the hash contribution of v using Default.
func Hash(v any) int32 { return Default.Hash(v) }

// Combine folds the hashes of values in order using Default.
func Combine(values ...any) int32 { return Default.Combine(values...) }

// Format returns the canonical string of v using Default.
func Format(v any) string { return Default.Format(v) }

// FormatComposite renders a named composite using Default.
func FormatComposite(name string, props ...Property) string {
	return Default.FormatComposite(name, props...)
}

// unwrap strips interface boxing so the dynamic value is inspected.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	return v
}

// isAbsent reports whether v stands for null: an invalid value or a nil
// pointer, slice, map, interface, func or chan.
func isAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
