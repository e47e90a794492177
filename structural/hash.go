package structural

import (
	"math"
	"reflect"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Hasher is implemented by values that compute their own hash.
// If a.Equal(b) then a.Hash() == b.Hash() must hold.
type Hasher interface {
	Hash() int32
}

const (
	hashSeed  int32 = 17
	hashPrime int32 = 486187739
)

// Hash returns the hash contribution of v. Values that are Equal hash the
// same. Absent values hash to 0, pairs to Combine(key, value), sequences to
// the combination of their elements in order and maps to an
// order-independent sum of their entries. A type with its own Equal but no
// Hash method hashes to a constant derived from the type name. Strings are
// hashed with xxhash so results are stable across processes.
func (e *Engine) Hash(v any) int32 {
	return e.hash(reflect.ValueOf(v))
}

// Combine folds the hashes of values in order: starting from 17, each value
// contributes h = h*486187739 + Hash(value) with wraparound. Combine with no
// values is 0.
func (e *Engine) Combine(values ...any) int32 {
	if len(values) == 0 {
		return 0
	}

	h := hashSeed
	for _, v := range values {
		h = h*hashPrime + e.Hash(v)
	}

	return h
}

func combineHashes(hashes ...int32) int32 {
	if len(hashes) == 0 {
		return 0
	}

	h := hashSeed
	for _, x := range hashes {
		h = h*hashPrime + x
	}

	return h
}

func (e *Engine) hash(v reflect.Value) int32 {
	v = unwrap(v)
	if isAbsent(v) {
		return 0
	}

	s := e.shapes.Of(v.Type())
	if o, ok := s.asOptional(v); ok {
		if !o.HasValue() {
			return combineHashes(0)
		}

		return combineHashes(1, e.Hash(o.Contents()))
	}

	if s.equalOnly {
		return s.typeHash
	}

	if s.hasher && v.CanInterface() {
		return v.Interface().(Hasher).Hash()
	}

	if key, value, ok := s.split(v); ok {
		return e.Combine(key, value)
	}

	switch s.kind {
	case ShapeSequence:
		if t, ok := e.traverse(v, s); ok {
			return e.hashSequence(t)
		}
	case ShapeMap:
		return e.hashMap(v)
	}

	return e.hashScalar(v)
}

func (e *Engine) hashSequence(t traversal) int32 {
	h, n := hashSeed, 0
	for x := range t.seq {
		h = h*hashPrime + e.hash(x)
		n++
	}

	if n == 0 {
		return 0
	}

	return h
}

// hashMap sums the entry hashes so iteration order does not matter.
func (e *Engine) hashMap(m reflect.Value) int32 {
	var sum int32

	it := m.MapRange()
	for it.Next() {
		sum += combineHashes(e.hash(it.Key()), e.hash(it.Value()))
	}

	return combineHashes(int32(m.Len()), sum)
}

func (e *Engine) hashScalar(v reflect.Value) int32 {
	if v.Type() == timeType && v.CanInterface() {
		t := v.Interface().(time.Time)
		return combineHashes(foldUint64(uint64(t.Unix())), int32(t.Nanosecond()))
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return 1
		}

		return 0
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return int32(v.Int())
	case reflect.Int, reflect.Int64:
		return foldUint64(uint64(v.Int()))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int32(uint32(v.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return foldUint64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return hashFloat(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return combineHashes(hashFloat(real(c)), hashFloat(imag(c)))
	case reflect.String:
		return foldUint64(xxhash.Sum64String(v.String()))
	case reflect.Pointer:
		return e.hash(v.Elem())
	case reflect.Struct:
		hashes := make([]int32, v.NumField())
		for i := range hashes {
			hashes[i] = e.hash(v.Field(i))
		}

		return combineHashes(hashes...)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return foldUint64(uint64(v.Pointer()))
	default:
		return 0
	}
}

// hashFloat hashes the IEEE bits with ±0 and NaN canonicalised, matching
// floatsEqual.
func hashFloat(f float64) int32 {
	switch {
	case f == 0:
		return 0
	case math.IsNaN(f):
		f = math.NaN()
	}

	return foldUint64(math.Float64bits(f))
}

func foldUint64(u uint64) int32 {
	return int32(uint32(u) ^ uint32(u>>32))
}
