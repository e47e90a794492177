package structural

import (
	"reflect"
	"time"
)

//go:generate go tool stringer -type=ShapeKind -output=kind_string.go

// ShapeKind classifies how the engine walks values of a type.
type ShapeKind int

const (
	ShapeUnknown  ShapeKind = iota
	ShapeScalar             // bool, numbers, strings, time.Time and named basics
	ShapePair               // PairLike or a registered decomposer
	ShapeSequence           // slice, array, Sequence or iter.Seq[E]
	ShapeMap                // Go map, walked as entries
	ShapeStruct             // composite walked field by field
	ShapePointer            // non-nil pointers are followed
	ShapeOpaque             // func, chan, unsafe.Pointer: identity only
)

var (
	pairLikeType = reflect.TypeFor[PairLike]()
	sequenceType = reflect.TypeFor[Sequence]()
	sizedType    = reflect.TypeFor[Sized]()
	hasherType   = reflect.TypeFor[Hasher]()
	stringerType = reflect.TypeFor[interface{ String() string }]()
	errorType    = reflect.TypeFor[error]()
	optionalType = reflect.TypeFor[Optional]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// classify picks the walking strategy for t, pairs excluded.
func classify(t reflect.Type) ShapeKind {
	switch {
	case t == timeType || t == durationType:
		return ShapeScalar
	case t.Kind() == reflect.Interface:
		return ShapeUnknown
	case t.Implements(sequenceType):
		return ShapeSequence
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return ShapeSequence
	case reflect.Map:
		return ShapeMap
	case reflect.Pointer:
		return ShapePointer
	case reflect.Func:
		if isSeqFunc(t) {
			return ShapeSequence
		}

		return ShapeOpaque
	case reflect.Chan, reflect.UnsafePointer:
		return ShapeOpaque
	case reflect.Struct:
		return ShapeStruct
	}

	return ShapeScalar
}

// isSeqFunc reports whether t has the form func(yield func(E) bool), the
// underlying type of iter.Seq[E].
func isSeqFunc(t reflect.Type) bool {
	if t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return false
	}

	yield := t.In(0)

	return yield.Kind() == reflect.Func &&
		yield.NumIn() == 1 && !yield.IsVariadic() &&
		yield.NumOut() == 1 && yield.Out(0).Kind() == reflect.Bool
}
