package plan

import (
	"go/types"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immutable-generator/internal/analyze"
	"immutable-generator/internal/config"
	"immutable-generator/internal/diagnostic"
	"immutable-generator/options"
)

const (
	shapesPath = "example.com/shapes"
	otherPath  = "example.com/other"
)

// buildTestTypeGraph creates a small graph with two packages.
func buildTestTypeGraph() *analyze.TypeGraph {
	graph := analyze.NewTypeGraph()

	intType := &analyze.TypeInfo{Kind: analyze.TypeKindBasic}
	stringType := &analyze.TypeInfo{Kind: analyze.TypeKindBasic}
	funcType := &analyze.TypeInfo{
		Kind:   analyze.TypeKindFunc,
		GoType: types.NewSignatureType(nil, nil, nil, nil, nil, false),
	}

	point := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: shapesPath, Name: "Point"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			{Name: "X", Exported: true, Type: intType, Index: 0},
			{Name: "Y", Exported: true, Type: intType, Index: 1},
		},
		Directive: &analyze.Directive{Options: []string{"EnableOperatorEquals"}},
	}

	polygon := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: shapesPath, Name: "Polygon"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			{Name: "Name", Exported: true, Type: stringType, Index: 0},
			{Name: "Vertices", Exported: true, Type: &analyze.TypeInfo{Kind: analyze.TypeKindSlice, ElemType: point}, Index: 1},
			{Name: "cache", Type: intType, Tag: reflect.StructTag(`immutable:"computed"`), Index: 2},
			{Name: "origin", Type: stringType, Tag: reflect.StructTag(`immutable:"-"`), Index: 3},
			{Name: "OnChange", Exported: true, Type: funcType, Index: 4},
			{Name: "_", Type: intType, Index: 5},
		},
	}

	color := &analyze.TypeInfo{
		ID:         analyze.TypeID{PkgPath: shapesPath, Name: "Color"},
		Kind:       analyze.TypeKindAlias,
		Underlying: stringType,
		Directive:  &analyze.Directive{},
	}

	empty := &analyze.TypeInfo{
		ID:        analyze.TypeID{PkgPath: shapesPath, Name: "Empty"},
		Kind:      analyze.TypeKindStruct,
		Directive: &analyze.Directive{},
	}

	otherPoint := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: otherPath, Name: "Point"},
		Kind: analyze.TypeKindStruct,
	}

	for _, t := range []*analyze.TypeInfo{point, polygon, color, empty, otherPoint} {
		graph.Types[t.ID] = t
	}

	graph.Packages[shapesPath] = &analyze.PackageInfo{
		Path:  shapesPath,
		Name:  "shapes",
		Types: []analyze.TypeID{color.ID, empty.ID, point.ID, polygon.ID},
	}
	graph.Packages[otherPath] = &analyze.PackageInfo{
		Path:  otherPath,
		Name:  "other",
		Types: []analyze.TypeID{otherPoint.ID},
	}

	return graph
}

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}

	return out
}

func TestResolve_Directives(t *testing.T) {
	p, err := NewResolver(buildTestTypeGraph(), nil).Resolve()
	require.NoError(t, err)

	require.Len(t, p.Types, 2)
	assert.Equal(t, "Empty", p.Types[0].Type.ID.Name)
	assert.Equal(t, "Point", p.Types[1].Type.ID.Name)

	point := p.Types[1]
	assert.Equal(t, options.EnableOperatorEquals, point.Options)
	assert.Equal(t, SourceDirective, point.Source)
	assert.Equal(t, []string{"X", "Y"}, point.FieldNames())
	assert.Equal(t, "shapes", point.Package.Name)

	assert.Equal(t, config.DefaultEngine, p.Engine.String())
	assert.Equal(t, []string{diagnostic.CodeNotStruct}, codes(p.Diagnostics.Errors))
	assert.Equal(t, []string{diagnostic.CodeNoFields}, codes(p.Diagnostics.Warnings))
}

func TestResolve_ConfigSelectsAndOverrides(t *testing.T) {
	cfg := &config.File{
		Engine: "example.com/app/values.Engine",
		Types: []config.TypeConfig{
			{Name: "shapes.Point", Options: config.StringOrArray{"DisableWith"}},
			{Name: "Polygon", Exclude: []string{"Name"}},
		},
	}

	p, err := NewResolver(buildTestTypeGraph(), cfg).Resolve()
	require.NoError(t, err)

	assert.Equal(t, config.EngineRef{PkgPath: "example.com/app/values", Name: "Engine"}, p.Engine)

	point := p.Lookup(analyze.TypeID{PkgPath: shapesPath, Name: "Point"})
	require.NotNil(t, point)
	assert.Equal(t, SourceBoth, point.Source)
	assert.Equal(t, options.DisableWith, point.Options, "config options replace the directive")

	polygon := p.Lookup(analyze.TypeID{PkgPath: shapesPath, Name: "Polygon"})
	require.NotNil(t, polygon)
	assert.Equal(t, SourceConfig, polygon.Source)
	assert.Equal(t, options.None, polygon.Options)
	assert.Equal(t, []string{"Vertices"}, polygon.FieldNames())

	reasons := map[string]ExclusionReason{}
	for _, ex := range polygon.Excluded {
		reasons[ex.Field.Name] = ex.Reason
	}

	assert.Equal(t, map[string]ExclusionReason{
		"Name":     ExcludedByConfig,
		"cache":    ExcludedComputed,
		"origin":   ExcludedByTag,
		"OnChange": ExcludedFunc,
		"_":        ExcludedBlank,
	}, reasons)

	assert.Contains(t, codes(p.Diagnostics.Warnings), diagnostic.CodeFuncField)
}

func TestResolve_UnknownNames(t *testing.T) {
	tests := []struct {
		name    string
		entry   config.TypeConfig
		code    string
		suggest string
	}{
		{"type", config.TypeConfig{Name: "Polygn"}, diagnostic.CodeUnknownType, "Polygon"},
		{"ambiguous", config.TypeConfig{Name: "Point"}, diagnostic.CodeAmbiguousType, "example.com/other.Point"},
		{"field", config.TypeConfig{Name: "Polygon", Exclude: []string{"Vertexes"}}, diagnostic.CodeUnknownField, "Vertices"},
		{
			"option",
			config.TypeConfig{Name: "example.com/shapes.Polygon", Options: config.StringOrArray{"DisableEqual"}},
			diagnostic.CodeUnknownOption,
			"DisableEquals",
		},
		{"not struct", config.TypeConfig{Name: "shapes.Color"}, diagnostic.CodeNotStruct, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph := buildTestTypeGraph()
			graph.Types[analyze.TypeID{PkgPath: shapesPath, Name: "Color"}].Directive = nil

			p, err := NewResolver(graph, &config.File{Types: []config.TypeConfig{tt.entry}}).Resolve()
			require.NoError(t, err)

			require.Len(t, p.Diagnostics.Errors, 1)

			d := p.Diagnostics.Errors[0]
			assert.Equal(t, tt.code, d.Code)

			if tt.suggest != "" {
				assert.Contains(t, d.Suggestions, tt.suggest)
			}

			assert.Nil(t, p.Lookup(analyze.TypeID{PkgPath: shapesPath, Name: "Polygon"}))
		})
	}
}

func TestResolve_NothingEnabled(t *testing.T) {
	graph := buildTestTypeGraph()
	graph.Types[analyze.TypeID{PkgPath: shapesPath, Name: "Point"}].Directive.Options = []string{
		"DisableEquals|DisableGetHashCode|DisableToString|DisableWith",
	}

	p, err := NewResolver(graph, nil).Resolve()
	require.NoError(t, err)

	assert.Nil(t, p.Lookup(analyze.TypeID{PkgPath: shapesPath, Name: "Point"}))
	assert.Contains(t, codes(p.Diagnostics.Warnings), diagnostic.CodeNothingEnabled)
}

func TestResolve_HashMismatch(t *testing.T) {
	cfg := &config.File{Types: []config.TypeConfig{
		{Name: "Polygon", Options: config.StringOrArray{"DisableGetHashCode"}},
	}}

	p, err := NewResolver(buildTestTypeGraph(), cfg).Resolve()
	require.NoError(t, err)

	assert.Contains(t, codes(p.Diagnostics.Warnings), diagnostic.CodeHashMismatch)
}

func TestResolve_UnknownTag(t *testing.T) {
	graph := buildTestTypeGraph()
	point := graph.Types[analyze.TypeID{PkgPath: shapesPath, Name: "Point"}]
	point.Fields[0].Tag = `immutable:"computd"`

	p, err := NewResolver(graph, nil).Resolve()
	require.NoError(t, err)

	require.Contains(t, codes(p.Diagnostics.Warnings), diagnostic.CodeUnknownTag)
	assert.Equal(t, []string{"X", "Y"}, p.Lookup(point.ID).FieldNames(), "unknown tag values keep the field")
}

func TestResolve_Errors(t *testing.T) {
	_, err := NewResolver(nil, nil).Resolve()
	require.ErrorIs(t, err, ErrNoGraph)

	_, err = NewResolver(buildTestTypeGraph(), &config.File{Engine: "nope"}).Resolve()
	require.ErrorIs(t, err, config.ErrInvalidEngine)
}

func TestExportConfig(t *testing.T) {
	cfg := &config.File{Types: []config.TypeConfig{
		{Name: "Polygon", Options: config.StringOrArray{"DisableWith", "DisableToString"}, Exclude: []string{"Name"}},
	}}

	p, err := NewResolver(buildTestTypeGraph(), cfg).Resolve()
	require.NoError(t, err)

	f := ExportConfig(p)
	require.Len(t, f.Types, 3)

	assert.Equal(t, config.TypeConfig{Name: "example.com/shapes.Empty", Options: config.StringOrArray{"None"}}, f.Types[0])
	assert.Equal(t, config.StringOrArray{"EnableOperatorEquals"}, f.Types[1].Options)
	assert.Equal(t, config.TypeConfig{
		Name:    "example.com/shapes.Polygon",
		Options: config.StringOrArray{"DisableToString", "DisableWith"},
		Exclude: []string{"Name"},
	}, f.Types[2])

	data, err := ExportConfigYAML(p)
	require.NoError(t, err)

	back, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestResolve_NameClashes(t *testing.T) {
	graph := analyze.NewTypeGraph()
	str := &analyze.TypeInfo{Kind: analyze.TypeKindBasic}

	item := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: shapesPath, Name: "Item"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			{Name: "Name", Exported: true, Type: str, Index: 0},
			{Name: "Hash", Exported: true, Type: str, Index: 1},
		},
		Directive: &analyze.Directive{},
	}
	label := &analyze.TypeInfo{
		ID:        analyze.TypeID{PkgPath: shapesPath, Name: "Label"},
		Kind:      analyze.TypeKindStruct,
		Fields:    []analyze.FieldInfo{{Name: "Text", Exported: true, Type: str}},
		Methods:   []string{"String"},
		Directive: &analyze.Directive{Options: []string{"EnableOperatorEquals"}},
	}
	tag := &analyze.TypeInfo{
		ID:        analyze.TypeID{PkgPath: shapesPath, Name: "Tag"},
		Kind:      analyze.TypeKindStruct,
		Fields:    []analyze.FieldInfo{{Name: "Value", Exported: true, Type: str}},
		Directive: &analyze.Directive{},
	}
	digest := &analyze.TypeInfo{
		ID:        analyze.TypeID{PkgPath: shapesPath, Name: "Digest"},
		Kind:      analyze.TypeKindStruct,
		Fields:    []analyze.FieldInfo{{Name: "Hash", Exported: true, Type: str}},
		Directive: &analyze.Directive{Options: []string{"DisableGetHashCode"}},
	}

	for _, ti := range []*analyze.TypeInfo{item, label, tag, digest} {
		graph.Types[ti.ID] = ti
	}

	graph.Packages[shapesPath] = &analyze.PackageInfo{
		Path:     shapesPath,
		Name:     "shapes",
		Types:    []analyze.TypeID{digest.ID, item.ID, label.ID, tag.ID},
		Declared: map[string]bool{"Tag": true, "TagWith": true, "EqualLabel": true, "ItemWith": false},
	}

	p, err := NewResolver(graph, nil).Resolve()
	require.NoError(t, err)

	require.Len(t, p.Types, 1)
	assert.Equal(t, "Digest", p.Types[0].Type.ID.Name, "a disabled member cannot clash")

	got := map[string]string{}
	for _, d := range p.Diagnostics.Errors {
		assert.Equal(t, diagnostic.CodeNameClash, d.Code)
		require.Len(t, d.Suggestions, 1)
		got[d.Field] = d.Suggestions[0]
	}

	assert.Equal(t, map[string]string{
		"Hash":       "DisableGetHashCode",
		"String":     "DisableToString",
		"EqualLabel": "EnableOperatorEquals",
		"TagWith":    "DisableWith",
	}, got)
}
