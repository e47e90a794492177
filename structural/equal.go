package structural

import (
	"iter"
	"math"
	"reflect"
)

// Equal reports whether a and b are structurally equal.
//
// Two absent values (nil, or nil pointers, slices, maps, interfaces, funcs
// and chans) are equal and never equal a present value. Optionals compare
// by presence and contents. A type's own Equal method is authoritative;
// when the type has no Hash method it only equals values of its own type.
// Otherwise identical comparable values are equal without further work.
// Pairs compare by key and value, sequences element by element in order,
// maps by key lookup, and structs and pointers by their fields and
// pointees. Funcs that are not iterators compare by identity.
//
// Cyclic values do not terminate.
func (e *Engine) Equal(a, b any) bool {
	return e.equal(reflect.ValueOf(a), reflect.ValueOf(b))
}

func (e *Engine) equal(a, b reflect.Value) bool {
	a, b = unwrap(a), unwrap(b)

	aAbsent, bAbsent := isAbsent(a), isAbsent(b)
	if aAbsent || bAbsent {
		return aAbsent && bAbsent
	}

	sa, sb := e.shapes.Of(a.Type()), e.shapes.Of(b.Type())

	oa, okA := sa.asOptional(a)
	ob, okB := sb.asOptional(b)
	if okA || okB {
		return okA && okB && e.equalOptionals(oa, ob)
	}

	if a.Type() != b.Type() && (sa.equalOnly || sb.equalOnly) {
		return false
	}

	if equal, decided := intrinsicEqual(sa, a, b); equal || decided {
		return equal
	}

	if ka, va, ok := sa.split(a); ok {
		kb, vb, ok := sb.split(b)
		return ok && e.Equal(ka, kb) && e.Equal(va, vb)
	}

	switch {
	case sa.kind == ShapeSequence && sb.kind == ShapeSequence:
		ta, okA := e.traverse(a, sa)
		tb, okB := e.traverse(b, sb)
		if okA && okB {
			return e.equalSequences(ta, tb)
		}
	case sa.kind == ShapeMap && sb.kind == ShapeMap:
		return e.equalMaps(a, b)
	}

	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Pointer:
		return e.equal(a.Elem(), b.Elem())
	case reflect.Struct:
		for i := range a.NumField() {
			if !e.equal(a.Field(i), b.Field(i)) {
				return false
			}
		}

		return true
	case reflect.Func:
		return a.Pointer() == b.Pointer()
	default:
		return false
	}
}

func (e *Engine) equalOptionals(a, b Optional) bool {
	if a.HasValue() != b.HasValue() {
		return false
	}

	return !a.HasValue() || e.Equal(a.Contents(), b.Contents())
}

// intrinsicEqual applies the value's own notion of equality. decided is
// true when that answer is final, as for a typed Equal method or floats.
func intrinsicEqual(s *Shape, a, b reflect.Value) (equal, decided bool) {
	if equal, ok := s.callEqual(a, b); ok {
		return equal, true
	}

	if a.Type() != b.Type() {
		return false, false
	}

	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		return floatsEqual(a.Float(), b.Float()), true
	case reflect.Complex64, reflect.Complex128:
		ca, cb := a.Complex(), b.Complex()
		return floatsEqual(real(ca), real(cb)) && floatsEqual(imag(ca), imag(cb)), true
	}

	if a.Comparable() && b.Comparable() {
		return a.Equal(b), false
	}

	return false, false
}

// floatsEqual is == except that NaN equals NaN, keeping Equal reflexive.
func floatsEqual(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// equalSequences walks a and b in lockstep. Lengths are compared first
// when both are known.
func (e *Engine) equalSequences(a, b traversal) bool {
	if a.sized && b.sized && a.n != b.n {
		return false
	}

	next, stop := iter.Pull(b.seq)
	defer stop()

	for x := range a.seq {
		y, ok := next()
		if !ok || !e.equal(x, y) {
			return false
		}
	}

	_, more := next()

	return !more
}

func (e *Engine) equalMaps(a, b reflect.Value) bool {
	if a.Len() != b.Len() {
		return false
	}

	if a.Type() == b.Type() {
		it := a.MapRange()
		for it.Next() {
			bv := b.MapIndex(it.Key())
			if !bv.IsValid() || !e.equal(it.Value(), bv) {
				return false
			}
		}

		return true
	}

	// Different map types cannot share keys, so compare canonical entry order.
	ea, eb := e.entries(a), e.entries(b)
	for i := range ea {
		if !e.equal(ea[i].key, eb[i].key) || !e.equal(ea[i].value, eb[i].value) {
			return false
		}
	}

	return true
}
