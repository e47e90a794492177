package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// ErrPackageErrors is returned when loaded packages fail to parse or type-check.
var ErrPackageErrors = errors.New("package errors")

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the directory patterns are resolved in; empty means the
	// process working directory.
	Dir string

	// TolerateSuffix names files whose type errors are ignored, so stale
	// generated code does not block its own regeneration. Declarations in
	// those files are left out of TypeInfo.Methods and PackageInfo.Declared.
	TolerateSuffix string

	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./geometry", "immutable-generator/examples/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []string

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if a.tolerated(e) {
				continue
			}

			errs = append(errs, e.Error())
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrPackageErrors, strings.Join(errs, "; "))
	}

	// Register every package first so named types from sibling packages are
	// not mistaken for external ones.
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path:     pkg.PkgPath,
			Name:     pkg.Name,
			Dir:      packageDir(pkg),
			Declared: map[string]bool{},
		}
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func (a *Analyzer) tolerated(e packages.Error) bool {
	if e.Kind != packages.TypeError {
		return false
	}

	file, _, _ := strings.Cut(e.Pos, ":")

	return a.generated(file)
}

// generated reports whether file is output of a previous run.
func (a *Analyzer) generated(file string) bool {
	return a.TolerateSuffix != "" && strings.HasSuffix(file, a.TolerateSuffix)
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil {
		return fmt.Errorf("no type information for %s", pkg.PkgPath)
	}

	pkgInfo := a.graph.Packages[pkg.PkgPath]
	directives := collectDirectives(pkg.Fset, pkg.Syntax)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)

		if !a.generated(pkg.Fset.Position(obj.Pos()).Filename) {
			pkgInfo.Declared[name] = true
		}

		// Only process type names (not variables, constants, functions)
		typeName, ok := obj.(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		typeInfo := a.analyzeType(typeName.Type())
		typeInfo.ID = typeID
		typeInfo.Pos = pkg.Fset.Position(typeName.Pos())
		typeInfo.Directive = directives[typeName.Pos()]

		if named, ok := typeName.Type().(*types.Named); ok {
			typeInfo.TypeParams = typeParams(named.TypeParams())
			typeInfo.Methods = a.declaredMethods(pkg.Fset, named)
		}

		a.graph.Types[typeID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	return nil
}

// collectDirectives maps type name positions to their directive.
func collectDirectives(fset *token.FileSet, files []*ast.File) map[token.Pos]*Directive {
	out := map[token.Pos]*Directive{}

	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				if d := findDirective(fset, doc); d != nil {
					out[ts.Name.Pos()] = d
				}
			}
		}
	}

	return out
}

func findDirective(fset *token.FileSet, doc *ast.CommentGroup) *Directive {
	if doc == nil {
		return nil
	}

	for _, c := range doc.List {
		if opts, ok := ParseDirective(c.Text); ok {
			return &Directive{Options: opts, Pos: fset.Position(c.Pos())}
		}
	}

	return nil
}

// declaredMethods lists the methods declared on named outside generated
// files.
func (a *Analyzer) declaredMethods(fset *token.FileSet, named *types.Named) []string {
	var out []string

	for i := range named.NumMethods() {
		m := named.Method(i)
		if a.generated(fset.Position(m.Pos()).Filename) {
			continue
		}

		out = append(out, m.Name())
	}

	return out
}

func typeParams(list *types.TypeParamList) []TypeParam {
	if list.Len() == 0 {
		return nil
	}

	out := make([]TypeParam, 0, list.Len())
	for i := range list.Len() {
		tp := list.At(i)
		out = append(out, TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: tp.Constraint(),
		})
	}

	return out
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	case *types.Signature:
		info.Kind = TypeKindFunc

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Chan:
		info.Kind = TypeKindChan

	case *types.TypeParam:
		info.Kind = TypeKindTypeParam

	default:
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	// Universe types such as error have no package.
	if obj.Pkg() == nil {
		info.ID = TypeID{Name: obj.Name()}
		info.Kind = TypeKindInterface

		return
	}

	info.ID = TypeID{
		PkgPath: obj.Pkg().Path(),
		Name:    obj.Name(),
	}

	if a.isExternalPackage(obj.Pkg().Path()) {
		info.Kind = TypeKindExternal
		return
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		// Named type wrapping something else in our packages
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type. Unexported fields
// are kept: generated methods live in the same package.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// GetStruct returns the TypeInfo for a named struct.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}

// Directives returns the types carrying a directive, sorted by ID.
func (g *TypeGraph) Directives() []*TypeInfo {
	var out []*TypeInfo

	for _, t := range g.Types {
		if t.Directive != nil {
			out = append(out, t)
		}
	}

	slices.SortFunc(out, func(x, y *TypeInfo) int {
		return strings.Compare(x.ID.String(), y.ID.String())
	})

	return out
}
