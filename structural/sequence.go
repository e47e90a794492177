package structural

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Sequence is an ordered collection that is not a slice or array.
// All must yield the elements in a stable order; the engine traverses it
// exactly once per operation. Pointer receivers are fine: a pointer whose
// method set has All is walked as a sequence. Plain iterators of the form
// func(yield func(E) bool), such as iter.Seq[E], are sequences as well.
type Sequence interface {
	All() iter.Seq[any]
}

// Sized is implemented by sequences whose length is known upfront.
type Sized interface {
	Len() int
}

// traversal is a single-pass walk over a sequence.
type traversal struct {
	seq   iter.Seq[reflect.Value]
	n     int
	sized bool
}

// traverse returns the elements of a sequence-shaped v. ok is false when v
// cannot be walked, for instance a custom Sequence reached through an
// unexported field.
func (e *Engine) traverse(v reflect.Value, s *Shape) (t traversal, ok bool) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		n := v.Len()
		return traversal{
			n:     n,
			sized: true,
			seq: func(yield func(reflect.Value) bool) {
				for i := range n {
					if !yield(v.Index(i)) {
						return
					}
				}
			},
		}, true
	}

	if !v.CanInterface() {
		return traversal{}, false
	}

	switch {
	case s.kind != ShapeSequence:
		return traversal{}, false
	case v.Type().Implements(sequenceType):
		all := v.Interface().(Sequence).All()
		t = traversal{
			seq: func(yield func(reflect.Value) bool) {
				for x := range all {
					if !yield(reflect.ValueOf(x)) {
						return
					}
				}
			},
		}
	default:
		t = traversal{seq: v.Seq()}
	}

	if s.sized {
		t.n, t.sized = v.Interface().(Sized).Len(), true
	}

	return t, true
}

// entry is one key/value of a Go map.
type entry struct {
	key, value reflect.Value
}

// entries returns the entries of map m in canonical key order.
func (e *Engine) entries(m reflect.Value) []entry {
	out := make([]entry, 0, m.Len())

	it := m.MapRange()
	for it.Next() {
		out = append(out, entry{key: it.Key(), value: it.Value()})
	}

	slices.SortStableFunc(out, func(a, b entry) int {
		return e.compareKeys(a.key, b.key)
	})

	return out
}

// compareKeys orders map keys: ordered kinds natively, everything else
// by canonical string.
func (e *Engine) compareKeys(a, b reflect.Value) int {
	a, b = unwrap(a), unwrap(b)

	if !isAbsent(a) && !isAbsent(b) && a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return strings.Compare(a.String(), b.String())
		case reflect.Bool:
			return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
		}
	}

	return strings.Compare(e.format(a), e.format(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}
