package list_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"immutable-generator/internal/cmd/list"
	"immutable-generator/internal/config"
	"immutable-generator/internal/logutil"
)

const geometryPkg = "immutable-generator/examples/geometry"

func run(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer

	app := &cli.App{
		Name:      "immutable-gen",
		Flags:     logutil.Flags(),
		Commands:  []*cli.Command{list.Command()},
		Writer:    &out,
		ErrWriter: &errOut,
	}

	require.NoError(t, app.Run(append([]string{"immutable-gen"}, args...)), errOut.String())

	return out.String(), errOut.String()
}

func TestList(t *testing.T) {
	out, _ := run(t, "list", geometryPkg)

	assert.Contains(t, out, geometryPkg+".Point [")
	assert.Contains(t, out, "(directive)")
	assert.Contains(t, out, geometryPkg+".Segment [")
	assert.Contains(t, out, "(config)")
	assert.Contains(t, out, "  fields: Name, Vertices, Style\n")
	assert.Contains(t, out, "  excluded: source (tag)\n")
}

func TestList_YAML(t *testing.T) {
	out, _ := run(t, "--logfmt", "none", "list", "--yaml", geometryPkg)

	f, err := config.Parse([]byte(out))
	require.NoError(t, err, out)

	var names []string
	for _, tc := range f.Types {
		names = append(names, tc.Name)
	}

	assert.Equal(t, config.CurrentVersion, f.Version)
	assert.Len(t, names, 4)
	assert.True(t, config.Validate(f).IsValid())

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &raw))
	assert.Contains(t, raw, "types")
}
