package analyze

import (
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"immutable-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "immutable-generator/examples/geometry"
	Name    string // e.g., "Point"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindFunc               // func type
	TypeKindInterface          // interface type
	TypeKindChan               // channel type
	TypeKindTypeParam          // type parameter of a generic type
	TypeKindAlias              // named type wrapping a non-struct
	TypeKindExternal           // named type from a package that was not loaded
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindFunc:
		return "func"
	case TypeKindInterface:
		return "interface"
	case TypeKindChan:
		return "chan"
	case TypeKindTypeParam:
		return "type parameter"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named non-struct types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo   // For maps, the key type
	Fields     []FieldInfo // For structs, the list of fields
	GoType     types.Type  // The original go/types.Type

	// Set for named types declared in a loaded package.
	TypeParams []TypeParam    // Type parameters of a generic type
	Methods    []string       // Methods declared outside generated files
	Directive  *Directive     // The //immutable:generate directive, if any
	Pos        token.Position // Declaration position
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// IsGeneric returns true if the type declares type parameters.
func (t *TypeInfo) IsGeneric() bool {
	return len(t.TypeParams) > 0
}

// Field returns the field with the given name, or nil.
func (t *TypeInfo) Field(name string) *FieldInfo {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}

	return nil
}

// HasMethod reports whether the type declares a method called name.
func (t *TypeInfo) HasMethod(name string) bool {
	return slices.Contains(t.Methods, name)
}

// FieldNames returns the field names in declaration order.
func (t *TypeInfo) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		names = append(names, f.Name)
	}

	return names
}

// TypeParam is one type parameter of a generic type.
type TypeParam struct {
	Name       string
	Constraint types.Type
}

// Directive is a parsed //immutable:generate comment.
type Directive struct {
	// Options are the option names after the directive, in order.
	Options []string
	Pos     token.Position
}

// DirectivePrefix marks a struct for generation.
const DirectivePrefix = "//immutable:generate"

// ParseDirective parses one comment line. ok is false for anything other
// than the directive, including "//immutable:generated".
func ParseDirective(line string) (opts []string, ok bool) {
	rest, found := strings.CutPrefix(line, DirectivePrefix)
	if !found {
		return nil, false
	}

	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, false
	}

	return strings.Fields(rest), true
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackagePaths returns the loaded package paths, sorted.
func (g *TypeGraph) PackagePaths() []string {
	paths := make([]string, 0, len(g.Packages))
	for p := range g.Packages {
		paths = append(paths, p)
	}

	slices.Sort(paths)

	return paths
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package's Go files
	Types []TypeID // Named types defined in this package, sorted by name

	// Declared holds the package-level names declared outside generated
	// files.
	Declared map[string]bool
}
