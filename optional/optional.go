// Package optional provides Value, a tri-state override used by generated
// With methods to tell "no change requested" apart from "change to the
// zero value or nil".
package optional

import (
	"errors"

	"immutable-generator/structural"
)

// ErrAbsent is returned when the contents of an absent Value are requested.
var ErrAbsent = errors.New("optional value is absent")

// Value is either absent or present with a T, which may itself be nil or
// zero. The zero Value is absent, so struct fields of type Value default to
// "no override".
type Value[T any] struct {
	value   T
	present bool
}

// Some returns a present Value holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, present: true}
}

// None returns an absent Value. It equals the zero Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Of returns Some(v) when ok is true and None otherwise, matching the
// comma-ok results of map lookups and type assertions.
func Of[T any](v T, ok bool) Value[T] {
	if !ok {
		return None[T]()
	}

	return Some(v)
}

// HasValue reports whether o is present.
func (o Value[T]) HasValue() bool {
	return o.present
}

// Get returns the contained value, or ErrAbsent.
func (o Value[T]) Get() (T, error) {
	if !o.present {
		var zero T
		return zero, ErrAbsent
	}

	return o.value, nil
}

// MustGet returns the contained value and panics with ErrAbsent when o is
// absent.
func (o Value[T]) MustGet() T {
	v, err := o.Get()
	if err != nil {
		panic(err)
	}

	return v
}

// ValueOr returns the contained value, or def when o is absent.
func (o Value[T]) ValueOr(def T) T {
	if !o.present {
		return def
	}

	return o.value
}

// Apply returns the override when present and current otherwise. It is the
// per-field step of a With method.
func (o Value[T]) Apply(current T) T {
	return o.ValueOr(current)
}

// Clear makes o absent as if it was never assigned.
func (o *Value[T]) Clear() {
	*o = Value[T]{}
}

// Contents returns the contained value boxed as any, or nil when o is
// absent. Together with HasValue it makes Value a structural.Optional, so
// an engine walking a Value uses its own rules for the contents.
func (o Value[T]) Contents() any {
	if !o.present {
		return nil
	}

	return o.value
}

// Equal reports whether o and other are both absent, or both present with
// structurally equal values under structural.Default.
func (o Value[T]) Equal(other Value[T]) bool {
	return structural.Equal(o, other)
}

// Hash hashes the presence tag together with the value.
func (o Value[T]) Hash() int32 {
	return structural.Hash(o)
}

// String returns "absent" or "present(<value>)".
func (o Value[T]) String() string {
	return structural.Format(o)
}
