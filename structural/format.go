package structural

import (
	"reflect"
	"strconv"
	"strings"
)

// Property is one named value of a composite, in declaration order.
type Property struct {
	Name  string
	Value any
}

// Format returns the canonical string of v:
//
//	nil          null
//	optional     absent, or present(value)
//	pair         (key, value)
//	sequence     [ a, b, c ]   (empty: "[  ]")
//	map          [ (k1, v1), (k2, v2) ]   in canonical key order
//	struct       Name { field=value, ... }   unless it has a String method
//	scalar       its String/Error text, else the Go %v form; strings unquoted
func (e *Engine) Format(v any) string {
	return e.format(reflect.ValueOf(v))
}

// FormatComposite renders a named composite as
// "name { p1=v1, p2=v2 }", keeping the given property order.
func (e *Engine) FormatComposite(name string, props ...Property) string {
	var sb strings.Builder

	sb.WriteString(name)
	sb.WriteString(" { ")

	for i, p := range props {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(p.Name)
		sb.WriteByte('=')
		sb.WriteString(e.Format(p.Value))
	}

	sb.WriteString(" }")

	return sb.String()
}

func (e *Engine) format(v reflect.Value) string {
	v = unwrap(v)
	if isAbsent(v) {
		return "null"
	}

	s := e.shapes.Of(v.Type())
	if o, ok := s.asOptional(v); ok {
		if !o.HasValue() {
			return "absent"
		}

		return "present(" + e.Format(o.Contents()) + ")"
	}

	if key, value, ok := s.split(v); ok {
		return "(" + e.Format(key) + ", " + e.Format(value) + ")"
	}

	switch s.kind {
	case ShapeSequence:
		if t, ok := e.traverse(v, s); ok {
			return e.formatSequence(t)
		}
	case ShapeMap:
		return e.formatMap(v)
	}

	return e.formatScalar(v, s)
}

func (e *Engine) formatSequence(t traversal) string {
	var sb strings.Builder

	sb.WriteString("[ ")

	i := 0
	for x := range t.seq {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(e.format(x))
		i++
	}

	sb.WriteString(" ]")

	return sb.String()
}

func (e *Engine) formatMap(m reflect.Value) string {
	var sb strings.Builder

	sb.WriteString("[ ")

	for i, ent := range e.entries(m) {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString("(")
		sb.WriteString(e.format(ent.key))
		sb.WriteString(", ")
		sb.WriteString(e.format(ent.value))
		sb.WriteString(")")
	}

	sb.WriteString(" ]")

	return sb.String()
}

func (e *Engine) formatScalar(v reflect.Value, s *Shape) string {
	if v.CanInterface() {
		switch {
		case s.stringer:
			return v.Interface().(interface{ String() string }).String()
		case s.errorer:
			return v.Interface().(error).Error()
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 128)
	case reflect.String:
		return v.String()
	case reflect.Pointer:
		return e.format(v.Elem())
	case reflect.Struct:
		return e.formatStruct(v)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return "0x" + strconv.FormatUint(uint64(v.Pointer()), 16)
	default:
		return v.Type().String()
	}
}

// formatStruct renders a struct without a String method through the
// composite form, using every field in declaration order.
func (e *Engine) formatStruct(v reflect.Value) string {
	t := v.Type()

	name := t.Name()
	if name == "" {
		name = "struct"
	}

	var sb strings.Builder

	sb.WriteString(name)
	sb.WriteString(" { ")

	for i := range t.NumField() {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(t.Field(i).Name)
		sb.WriteByte('=')
		sb.WriteString(e.format(v.Field(i)))
	}

	sb.WriteString(" }")

	return sb.String()
}
