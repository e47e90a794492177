package structural

import "reflect"

// Optional is a value that may be absent, such as optional.Value. The
// engine compares, hashes and prints it by presence and contents ahead of
// any Equal, Hash or String method it has, so the contents go through the
// calling engine. An absent Optional differs from one holding nil.
type Optional interface {
	HasValue() bool
	Contents() any
}

// asOptional returns v as an Optional when its shape is one. Values
// reached through unexported fields are walked as plain structs.
func (s *Shape) asOptional(v reflect.Value) (Optional, bool) {
	if !s.optional || !v.CanInterface() {
		return nil, false
	}

	o, ok := v.Interface().(Optional)

	return o, ok
}
