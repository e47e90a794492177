// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of structs and their fields,
// and reads the //immutable:generate directive from type doc comments.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind, fields, type parameters, and directive
//   - FieldInfo: describes field name, type, tags, and embedding
package analyze
