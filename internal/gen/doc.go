// Package gen provides deterministic Go code generation for value-semantics
// methods.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code, one <type>_immutable.go file per selected
// struct, written next to the struct's package sources.
//
// Generated members, each switched by options.ClassOptions:
//   - Equal(other T) bool: field-wise structural equality
//   - Hash() int32: combined field hashes
//   - String() string: "T { f=v, ... }"
//   - TWith and With(changes TWith) T: copy with per-field overrides
//   - EqualT(a, b *T) bool: nil-safe pointer equality
package gen
