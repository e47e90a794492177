package gen

import (
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immutable-generator/internal/analyze"
	"immutable-generator/internal/config"
	"immutable-generator/internal/plan"
	"immutable-generator/options"
)

const shapesPath = "example.com/shapes"

var shapesPkg = types.NewPackage(shapesPath, "shapes")

func namedType(pkgPath, pkgName, name string) types.Type {
	pkg := types.NewPackage(pkgPath, pkgName)
	obj := types.NewTypeName(token.NoPos, pkg, name, nil)

	return types.NewNamed(obj, types.NewStruct(nil, nil), nil)
}

func field(name string, t types.Type) analyze.FieldInfo {
	return analyze.FieldInfo{
		Name:     name,
		Exported: token.IsExported(name),
		Type:     &analyze.TypeInfo{GoType: t},
	}
}

func typePlan(name string, opts options.ClassOptions, fields ...analyze.FieldInfo) plan.TypePlan {
	info := &analyze.TypeInfo{
		ID:     analyze.TypeID{PkgPath: shapesPath, Name: name},
		Kind:   analyze.TypeKindStruct,
		Fields: fields,
	}

	tp := plan.TypePlan{
		Type:    info,
		Package: &analyze.PackageInfo{Path: shapesPath, Name: "shapes", Dir: "/src/shapes"},
		Options: opts,
	}

	for i := range info.Fields {
		tp.Fields = append(tp.Fields, &info.Fields[i])
	}

	return tp
}

func defaultEngine(t *testing.T) config.EngineRef {
	t.Helper()

	ref, err := config.ParseEngine(config.DefaultEngine)
	require.NoError(t, err)

	return ref
}

func generateOne(t *testing.T, engine config.EngineRef, tp plan.TypePlan) string {
	t.Helper()

	p := &plan.Plan{Types: []plan.TypePlan{tp}, Engine: engine}

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(t.Context(), p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	return string(files[0].Content)
}

func pointPlan(opts options.ClassOptions) plan.TypePlan {
	return typePlan("Point", opts,
		field("X", types.Typ[types.Int]),
		field("Tags", types.NewSlice(types.Typ[types.String])),
		field("At", namedType("time", "time", "Time")),
	)
}

func TestGenerator_Generate_AllMembers(t *testing.T) {
	p := &plan.Plan{
		Types:  []plan.TypePlan{pointPlan(options.EnableOperatorEquals)},
		Engine: defaultEngine(t),
	}

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(t.Context(), p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, "point_immutable.go", file.Filename)
	assert.Equal(t, "/src/shapes", file.Dir)
	assert.Equal(t, filepath.Join("/src/shapes", "point_immutable.go"), file.Path())
	assert.Equal(t, "example.com/shapes.Point", file.TypeName)

	code := string(file.Content)

	for _, want := range []string{
		"// Code generated by immutable-gen. DO NOT EDIT.",
		"package shapes",
		`"time"`,
		`"immutable-generator/optional"`,
		`"immutable-generator/structural"`,
		"func (p Point) Equal(other Point) bool {",
		"return structural.Default.Equal(p.X, other.X) &&",
		"structural.Default.Equal(p.At, other.At)\n}",
		"func (p Point) Hash() int32 {\n\treturn structural.Default.Combine(p.X, p.Tags, p.At)\n}",
		"return structural.Default.FormatComposite(\"Point\",",
		`structural.Property{Name: "Tags", Value: p.Tags},`,
		"type PointWith struct {",
		"optional.Value[[]string]",
		"optional.Value[time.Time]",
		"func (p Point) With(changes PointWith) Point {",
		"p.At = changes.At.Apply(p.At)",
		"return p\n}",
		"func EqualPoint(a, b *Point) bool {",
		"return a.Equal(*b)",
	} {
		assert.Contains(t, code, want)
	}
}

func TestGenerator_Generate_Options(t *testing.T) {
	engine := defaultEngine(t)

	code := generateOne(t, engine, pointPlan(options.DisableWith|options.DisableToString))
	assert.Contains(t, code, "Equal(other Point) bool")
	assert.Contains(t, code, "Hash() int32")
	assert.NotContains(t, code, "String() string")
	assert.NotContains(t, code, "With(")
	assert.NotContains(t, code, "immutable-generator/optional")
	assert.NotContains(t, code, "EqualPoint")

	code = generateOne(t, engine, pointPlan(options.DisableEquals|options.EnableOperatorEquals))
	assert.NotContains(t, code, "Equal(other Point)")
	assert.Contains(t, code, "return structural.Default.Equal(*a, *b)")

	code = generateOne(t, engine, pointPlan(options.DisableEquals|options.DisableGetHashCode|options.DisableToString))
	assert.NotContains(t, code, "immutable-generator/structural", "With alone needs no engine")
	assert.Contains(t, code, "func (p Point) With(changes PointWith) Point {")
}

func TestGenerator_Generate_NoComments(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false

	p := &plan.Plan{Types: []plan.TypePlan{pointPlan(options.None)}, Engine: defaultEngine(t)}

	files, err := NewGenerator(cfg).Generate(t.Context(), p)
	require.NoError(t, err)
	assert.NotContains(t, string(files[0].Content), "// Equal reports")
	assert.Contains(t, string(files[0].Content), "// Code generated by immutable-gen. DO NOT EDIT.")
}

func TestGenerator_Generate_NoFields(t *testing.T) {
	code := generateOne(t, defaultEngine(t), typePlan("Empty", options.None))

	assert.Contains(t, code, "func (e Empty) Equal(other Empty) bool {\n\treturn true\n}")
	assert.Contains(t, code, "return structural.Default.Combine()")
	assert.Contains(t, code, `return structural.Default.FormatComposite("Empty")`)
	assert.Contains(t, code, "type EmptyWith struct {")
}

func TestGenerator_Generate_Generic(t *testing.T) {
	anyType := types.Universe.Lookup("any").Type()
	param := types.NewTypeParam(types.NewTypeName(token.NoPos, shapesPkg, "T", nil), anyType)

	tp := typePlan("Labeled", options.EnableOperatorEquals,
		field("Label", types.Typ[types.String]),
		field("Value", param),
	)
	tp.Type.TypeParams = []analyze.TypeParam{{Name: "T", Constraint: anyType}}

	code := generateOne(t, defaultEngine(t), tp)

	for _, want := range []string{
		"func (l Labeled[T]) Equal(other Labeled[T]) bool {",
		"func (l Labeled[T]) Hash() int32 {",
		"type LabeledWith[T any] struct {",
		"optional.Value[T]",
		"func (l Labeled[T]) With(changes LabeledWith[T]) Labeled[T] {",
		"func EqualLabeled[T any](a, b *Labeled[T]) bool {",
	} {
		assert.Contains(t, code, want)
	}
}

func TestGenerator_Generate_Engines(t *testing.T) {
	external := config.EngineRef{PkgPath: "example.com/app/values", Name: "Engine"}
	code := generateOne(t, external, pointPlan(options.None))
	assert.Contains(t, code, `"example.com/app/values"`)
	assert.Contains(t, code, "return values.Engine.Combine(p.X, p.Tags, p.At)")
	assert.Contains(t, code, `structural.Property{Name: "X", Value: p.X},`, "Property still comes from structural")

	local := config.EngineRef{PkgPath: shapesPath, Name: "Values"}
	code = generateOne(t, local, pointPlan(options.DisableToString|options.DisableWith))
	assert.Contains(t, code, "return Values.Combine(p.X, p.Tags, p.At)")
	assert.NotContains(t, code, "immutable-generator/structural")
}

func TestGenerator_Generate_ImportCollision(t *testing.T) {
	tp := typePlan("Wrapper", options.DisableWith,
		field("Inner", namedType("example.com/x/structural", "structural", "Node")),
	)

	code := generateOne(t, defaultEngine(t), tp)
	assert.Contains(t, code, `"example.com/x/structural"`)
	assert.Contains(t, code, `structural2 "immutable-generator/structural"`)
	assert.Contains(t, code, "structural2.Default.Equal(w.Inner, other.Inner)")
}

func TestGenerator_Generate_KeepsPlanOrder(t *testing.T) {
	names := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta"}

	p := &plan.Plan{Engine: defaultEngine(t)}
	for _, n := range names {
		p.Types = append(p.Types, typePlan(n, options.None, field("V", types.Typ[types.Int])))
	}

	cfg := DefaultGeneratorConfig()
	cfg.Workers = 3

	files, err := NewGenerator(cfg).Generate(t.Context(), p)
	require.NoError(t, err)
	require.Len(t, files, len(names))

	for i, n := range names {
		assert.Equal(t, shapesPath+"."+n, files[i].TypeName)
	}
}

func TestGenerator_Generate_MissingTypeInfo(t *testing.T) {
	tp := typePlan("Broken", options.None, analyze.FieldInfo{Name: "X", Type: &analyze.TypeInfo{}})

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(t.Context(), &plan.Plan{
		Types:  []plan.TypePlan{tp},
		Engine: defaultEngine(t),
	})
	require.ErrorIs(t, err, ErrNoTypeInfo)
	assert.Contains(t, err.Error(), "example.com/shapes.Broken")
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Point":      "point",
		"HTTPServer": "http_server",
		"userID":     "user_id",
		"Vec3D":      "vec3_d",
		"labeled":    "labeled",
	}

	for in, want := range tests {
		assert.Equal(t, want, snakeCase(in), in)
	}
}

func TestWriteFiles_Stale(t *testing.T) {
	dir := t.TempDir()

	files := []GeneratedFile{
		{Dir: dir, Filename: "a_immutable.go", Content: []byte("package a\n")},
		{Dir: filepath.Join(dir, "sub"), Filename: "b_immutable.go", Content: []byte("package b\n")},
	}

	stale, err := Stale(files)
	require.NoError(t, err)
	assert.Len(t, stale, 2, "missing files are stale")

	require.NoError(t, WriteFiles(files))

	stale, err = Stale(files)
	require.NoError(t, err)
	assert.Empty(t, stale)

	require.NoError(t, os.WriteFile(files[0].Path(), []byte("package a // edited\n"), filePerm))

	stale, err = Stale(files)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "a_immutable.go", stale[0].Filename)

	require.Error(t, WriteFiles([]GeneratedFile{{Filename: "x.go"}}))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "point_immutable.go", []byte("func {")))

	b, err := os.ReadFile(filepath.Join(dir, "point_immutable.go.unformatted"))
	require.NoError(t, err)
	assert.Equal(t, "func {", string(b))

	require.NoError(t, writeDebugUnformatted("", "x.go", nil))
}
