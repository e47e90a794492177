package gen

import (
	"errors"
	"fmt"
	"go/types"
	"strings"

	"immutable-generator/internal/common"
	"immutable-generator/internal/plan"
	"immutable-generator/options"
)

// ErrNoTypeInfo is returned when a field carries no go/types information.
var ErrNoTypeInfo = errors.New("missing type information")

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName      string
	Imports          []importSpec
	GenerateComments bool
	Options          options.ClassOptions

	// Name is the bare type name; TypeRef adds type arguments ("Box[T]").
	Name           string
	TypeRef        string
	TypeParamsDecl string
	Receiver       string
	WithName       string
	WithRef        string

	// Engine is the engine expression, Structural and Optional the package
	// qualifiers (with trailing dot, empty inside the package itself).
	Engine     string
	Structural string
	Optional   string

	Fields []fieldData
}

// fieldData represents one participating field.
type fieldData struct {
	Name string
	Type string
}

// buildTemplateData constructs the template data from a type plan.
func (g *Generator) buildTemplateData(p *plan.Plan, tp *plan.TypePlan) (*templateData, error) {
	pkgPath := tp.Type.ID.PkgPath
	imports := newImportSet(pkgPath)

	data := &templateData{
		PackageName:      tp.Package.Name,
		GenerateComments: g.config.GenerateComments,
		Options:          tp.Options,
		Name:             tp.Type.ID.Name,
		Receiver:         common.ReceiverName(tp.Type.ID.Name),
		WithName:         tp.Type.ID.Name + "With",
	}

	qualifier := imports.qualifier()

	// Field types and constraints are only spelled out by the With struct
	// and the pointer helper; rendering them otherwise would leave unused
	// imports behind.
	spellTypes := tp.Options.With()
	spellParams := spellTypes || tp.Options.OperatorEquals()

	var params, args []string
	for _, param := range tp.Type.TypeParams {
		constraint := "any"
		if param.Constraint != nil && spellParams {
			constraint = types.TypeString(param.Constraint, qualifier)
		}

		params = append(params, param.Name+" "+constraint)
		args = append(args, param.Name)
	}

	data.TypeRef = data.Name
	data.WithRef = data.WithName

	if len(params) > 0 {
		data.TypeParamsDecl = "[" + strings.Join(params, ", ") + "]"
		data.TypeRef += "[" + strings.Join(args, ", ") + "]"
		data.WithRef += "[" + strings.Join(args, ", ") + "]"
	}

	for _, f := range tp.Fields {
		fd := fieldData{Name: f.Name}

		if spellTypes {
			if f.Type == nil || f.Type.GoType == nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, ErrNoTypeInfo)
			}

			fd.Type = types.TypeString(f.Type.GoType, qualifier)
		}

		data.Fields = append(data.Fields, fd)
	}

	usesEngine := tp.Options.Equals() || tp.Options.Hash() || tp.Options.ToString() ||
		(tp.Options.OperatorEquals() && !tp.Options.Equals())

	if usesEngine {
		data.Engine = imports.ref(p.Engine.PkgPath, common.PkgAlias(p.Engine.PkgPath)) + p.Engine.Name
	}

	if tp.Options.ToString() && len(data.Fields) > 0 {
		data.Structural = imports.ref(g.config.StructuralPkg, common.PkgAlias(g.config.StructuralPkg))
	}

	if tp.Options.With() {
		data.Optional = imports.ref(g.config.OptionalPkg, common.PkgAlias(g.config.OptionalPkg))
	}

	data.Imports = imports.sorted()

	return data, nil
}
