package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immutable-generator/options"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
engine: example.com/app/values.Engine
types:
  - name: Point
    options: [EnableOperatorEquals, DisableToString]
  - name: geometry.Polygon
    options: DisableWith
    exclude:
      - cachedArea
  - name: immutable-generator/examples/geometry.Labeled
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "example.com/app/values.Engine", f.Engine)
	require.Len(t, f.Types, 3)

	assert.Equal(t, StringOrArray{"EnableOperatorEquals", "DisableToString"}, f.Types[0].Options)
	assert.Equal(t, StringOrArray{"DisableWith"}, f.Types[1].Options)
	assert.Equal(t, []string{"cachedArea"}, f.Types[1].Exclude)
	assert.Nil(t, f.Types[2].Options)

	opts, ok, err := f.Types[0].ParsedOptions()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, options.EnableOperatorEquals|options.DisableToString, opts)

	_, ok, err = f.Types[2].ParsedOptions()
	require.NoError(t, err)
	assert.False(t, ok, "no options keeps the directive")
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, f.Version)
	assert.Equal(t, DefaultEngine, f.Engine)
	assert.Empty(t, f.Types)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("types:\n  - name: Point\n    option: DisableWith\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestStringOrArray_RejectsMaps(t *testing.T) {
	_, err := Parse([]byte("types:\n  - name: Point\n    options: {a: b}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string or array")
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	in := &File{
		Version: CurrentVersion,
		Engine:  DefaultEngine,
		Types: []TypeConfig{
			{Name: "Point", Options: StringOrArray{"DisableWith"}},
		},
	}
	require.NoError(t, WriteFile(in, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "options: DisableWith")

	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		in       string
		expected TypeRef
		path     string
		pkg      string
		matches  bool
	}{
		{"Point", TypeRef{Name: "Point"}, "x/geometry", "geometry", true},
		{"geometry.Point", TypeRef{Qualifier: "geometry", Name: "Point"}, "x/geometry", "geometry", true},
		{"x/geometry.Point", TypeRef{Qualifier: "x/geometry", Name: "Point"}, "x/geometry", "geometry", true},
		{"other.Point", TypeRef{Qualifier: "other", Name: "Point"}, "x/geometry", "geometry", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref := ParseTypeRef(tt.in)
			assert.Equal(t, tt.expected, ref)
			assert.Equal(t, tt.in, ref.String())
			assert.Equal(t, tt.matches, ref.Matches(tt.path, tt.pkg, "Point"))
			assert.False(t, ref.Matches(tt.path, tt.pkg, "Polygon"))
		})
	}
}

func TestParseEngine(t *testing.T) {
	ref, err := ParseEngine(DefaultEngine)
	require.NoError(t, err)
	assert.Equal(t, EngineRef{PkgPath: "immutable-generator/structural", Name: "Default"}, ref)
	assert.Equal(t, DefaultEngine, ref.String())

	for _, bad := range []string{"", "Default", ".Default", "pkg.", "example.com/pkg", "pkg.engine"} {
		_, err := ParseEngine(bad)
		require.ErrorIs(t, err, ErrInvalidEngine, bad)
	}

	var nilFile *File
	ref, err = nilFile.EngineRef()
	require.NoError(t, err)
	assert.Equal(t, "Default", ref.Name)
}
