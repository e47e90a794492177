package structural

import (
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Shape is the cached classification of a type. Shapes are immutable once
// published to a ShapeCache.
type Shape struct {
	typ  reflect.Type
	kind ShapeKind
	pair splitFunc

	equal    reflect.Method // typed Equal method, valid when hasEqual
	hasEqual bool
	hasher   bool
	sized    bool
	stringer bool
	errorer  bool
	optional bool

	// equalOnly marks an own Equal without a matching Hash. Such values
	// hash to typeHash and only equal values of their own type.
	equalOnly bool
	typeHash  int32
}

// Type returns the type the shape describes.
func (s *Shape) Type() reflect.Type { return s.typ }

// Kind returns the walking strategy for the type.
func (s *Shape) Kind() ShapeKind { return s.kind }

// IsPair reports whether values of the type are decomposed as pairs.
func (s *Shape) IsPair() bool { return s.pair != nil }

// HasEqual reports whether the type defines its own Equal method.
func (s *Shape) HasEqual() bool { return s.hasEqual }

// ShapeCache maps types to their shapes. It is safe for concurrent use:
// racing lookups of an unseen type may both inspect it, but only one shape
// is published and readers never observe a partially built one.
// The zero value is ready to use.
type ShapeCache struct {
	shapes sync.Map // reflect.Type -> *Shape
	pairs  sync.Map // reflect.Type -> splitFunc
}

// NewShapeCache returns an empty cache.
func NewShapeCache() *ShapeCache {
	return &ShapeCache{}
}

// Of returns the shape of t, inspecting and caching it on first use.
func (c *ShapeCache) Of(t reflect.Type) *Shape {
	if s, ok := c.shapes.Load(t); ok {
		return s.(*Shape)
	}

	actual, _ := c.shapes.LoadOrStore(t, c.inspect(t))

	return actual.(*Shape)
}

// Len returns the number of cached shapes.
func (c *ShapeCache) Len() int {
	n := 0
	c.shapes.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// register records a decomposer for t and republishes its shape.
func (c *ShapeCache) register(t reflect.Type, fn splitFunc) {
	c.pairs.Store(t, fn)
	c.shapes.Store(t, c.inspect(t))
}

func (c *ShapeCache) inspect(t reflect.Type) *Shape {
	s := &Shape{
		typ:  t,
		kind: classify(t),
	}

	if fn, ok := c.pairs.Load(t); ok {
		s.pair = fn.(splitFunc)
	} else if t.Implements(pairLikeType) {
		s.pair = splitPairLike
	}

	if s.pair != nil {
		s.kind = ShapePair
	}

	if t.Kind() == reflect.Interface {
		return s
	}

	s.equal, s.hasEqual = equalMethod(t)
	s.hasher = t.Implements(hasherType)
	s.sized = t.Implements(sizedType)
	s.stringer = t.Implements(stringerType)
	s.errorer = t.Implements(errorType)
	s.optional = t.Implements(optionalType)

	if s.hasEqual && !s.hasher && t != timeType {
		s.equalOnly = true
		s.typeHash = foldUint64(xxhash.Sum64String(t.String()))
	}

	return s
}

// equalMethod finds a method of the form (T) Equal(U) bool where T is
// assignable to U, the same convention go-cmp and time.Time follow.
func equalMethod(t reflect.Type) (reflect.Method, bool) {
	m, ok := t.MethodByName("Equal")
	if !ok {
		return reflect.Method{}, false
	}

	mt := m.Type
	if mt.NumIn() != 2 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool {
		return reflect.Method{}, false
	}

	if !t.AssignableTo(mt.In(1)) {
		return reflect.Method{}, false
	}

	return m, true
}

// callEqual runs the type's own Equal method when it applies to a and b.
func (s *Shape) callEqual(a, b reflect.Value) (equal, ok bool) {
	if !s.hasEqual || !a.CanInterface() || !b.CanInterface() {
		return false, false
	}

	if !b.Type().AssignableTo(s.equal.Type.In(1)) {
		return false, false
	}

	out := s.equal.Func.Call([]reflect.Value{a, b})

	return out[0].Bool(), true
}
