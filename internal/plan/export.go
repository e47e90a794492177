package plan

import (
	"strings"

	"immutable-generator/internal/config"
)

// ExportConfig turns a resolved plan into an equivalent config file, so
// directive-based selections can be reviewed or pinned in YAML.
func ExportConfig(p *Plan) *config.File {
	f := &config.File{
		Version: config.CurrentVersion,
		Engine:  p.Engine.String(),
		Types:   make([]config.TypeConfig, 0, len(p.Types)),
	}

	for i := range p.Types {
		f.Types = append(f.Types, exportType(&p.Types[i]))
	}

	return f
}

// ExportConfigYAML renders ExportConfig as YAML.
func ExportConfigYAML(p *Plan) ([]byte, error) {
	return config.Marshal(ExportConfig(p))
}

func exportType(tp *TypePlan) config.TypeConfig {
	// String renders options.None as "None", which Parse accepts, so an
	// exported entry always pins its options.
	tc := config.TypeConfig{
		Name:    tp.Type.ID.String(),
		Options: strings.Split(tp.Options.String(), "|"),
	}

	for _, ex := range tp.Excluded {
		if ex.Reason == ExcludedByConfig {
			tc.Exclude = append(tc.Exclude, ex.Field.Name)
		}
	}

	return tc
}
