package plan

import (
	"errors"
	"fmt"
	"go/types"
	"slices"
	"strings"

	"immutable-generator/internal/analyze"
	"immutable-generator/internal/config"
	"immutable-generator/internal/diagnostic"
	"immutable-generator/internal/match"
	"immutable-generator/options"
)

// ErrNoGraph is returned by Resolve when no packages were analyzed.
var ErrNoGraph = errors.New("type graph is required")

// MaxSuggestions caps "did you mean" lists.
const MaxSuggestions = 3

// Resolver performs the resolution pipeline.
type Resolver struct {
	graph *analyze.TypeGraph
	cfg   *config.File
}

// NewResolver creates a new Resolver. cfg may be nil.
func NewResolver(graph *analyze.TypeGraph, cfg *config.File) *Resolver {
	return &Resolver{graph: graph, cfg: cfg}
}

// candidate accumulates a selection before fields are resolved.
type candidate struct {
	info    *analyze.TypeInfo
	opts    options.ClassOptions
	source  SelectionSource
	exclude []string
}

// Resolve runs the full resolution pipeline and returns a Plan. Problems in
// the inputs are reported in Plan.Diagnostics; the error is reserved for
// missing inputs and a malformed engine reference.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.graph == nil {
		return nil, ErrNoGraph
	}

	engine, err := r.cfg.EngineRef()
	if err != nil {
		return nil, err
	}

	p := &Plan{
		Types:     []TypePlan{},
		Engine:    engine,
		TypeGraph: r.graph,
	}

	selected := map[analyze.TypeID]*candidate{}

	r.selectDirectives(selected, &p.Diagnostics)
	r.selectConfig(selected, &p.Diagnostics)

	for _, c := range selected {
		tp, ok := r.resolveType(c, &p.Diagnostics)
		if ok {
			p.Types = append(p.Types, tp)
		}
	}

	// Sort for determinism
	slices.SortFunc(p.Types, func(a, b TypePlan) int {
		return strings.Compare(a.Type.ID.String(), b.Type.ID.String())
	})

	return p, nil
}

func (r *Resolver) selectDirectives(selected map[analyze.TypeID]*candidate, diags *diagnostic.Diagnostics) {
	for _, info := range r.graph.Directives() {
		name := info.ID.String()

		if info.Kind != analyze.TypeKindStruct {
			diags.AddError(diagnostic.CodeNotStruct,
				fmt.Sprintf("%s is a %s, only structs can be generated (%s)", info.ID.Name, info.Kind, info.Directive.Pos),
				name, "")

			continue
		}

		opts, ok := parseOptions(info.Directive.Options, name, diags)
		if !ok {
			continue
		}

		selected[info.ID] = &candidate{info: info, opts: opts, source: SourceDirective}
	}
}

func (r *Resolver) selectConfig(selected map[analyze.TypeID]*candidate, diags *diagnostic.Diagnostics) {
	if r.cfg == nil {
		return
	}

	for i := range r.cfg.Types {
		tc := &r.cfg.Types[i]

		info, ok := r.lookupType(tc.Name, diags)
		if !ok {
			continue
		}

		opts, set, err := tc.ParsedOptions()
		if err != nil {
			parseOptions(tc.Options, tc.Name, diags)
			continue
		}

		if c, ok := selected[info.ID]; ok {
			c.source = SourceBoth
			c.exclude = tc.Exclude

			if set {
				c.opts = opts
			}

			continue
		}

		selected[info.ID] = &candidate{info: info, opts: opts, source: SourceConfig, exclude: tc.Exclude}
	}
}

// lookupType resolves a configured name against the loaded packages.
func (r *Resolver) lookupType(name string, diags *diagnostic.Diagnostics) (*analyze.TypeInfo, bool) {
	ref := config.ParseTypeRef(name)

	var (
		found []*analyze.TypeInfo
		names []string
	)

	for _, path := range r.graph.PackagePaths() {
		pkg := r.graph.Packages[path]
		for _, id := range pkg.Types {
			names = append(names, id.Name)

			if ref.Matches(pkg.Path, pkg.Name, id.Name) {
				found = append(found, r.graph.GetType(id))
			}
		}
	}

	switch len(found) {
	case 0:
		diags.AddError(diagnostic.CodeUnknownType,
			fmt.Sprintf("type %q not found in loaded packages", name), name, "",
			match.Suggest(ref.Name, names, MaxSuggestions)...)

		return nil, false

	case 1:
		if found[0].Kind != analyze.TypeKindStruct {
			diags.AddError(diagnostic.CodeNotStruct,
				fmt.Sprintf("%s is a %s, only structs can be generated", name, found[0].Kind), name, "")

			return nil, false
		}

		return found[0], true

	default:
		ids := make([]string, 0, len(found))
		for _, f := range found {
			ids = append(ids, f.ID.String())
		}

		diags.AddError(diagnostic.CodeAmbiguousType,
			fmt.Sprintf("type %q matches %d types, qualify it with the package", name, len(found)), name, "",
			ids...)

		return nil, false
	}
}

func parseOptions(names []string, typeName string, diags *diagnostic.Diagnostics) (options.ClassOptions, bool) {
	var out options.ClassOptions

	valid := true

	for _, n := range names {
		opt, err := options.Parse(n)
		if err != nil {
			diags.AddError(diagnostic.CodeUnknownOption, fmt.Sprintf("unknown option %q", n), typeName, "",
				match.Suggest(n, options.Names(), MaxSuggestions)...)

			valid = false

			continue
		}

		out |= opt
	}

	return out, valid
}

// resolveType decides field participation for one selected struct.
func (r *Resolver) resolveType(c *candidate, diags *diagnostic.Diagnostics) (TypePlan, bool) {
	name := c.info.ID.String()

	tp := TypePlan{
		Type:          c.info,
		Package:       r.graph.Packages[c.info.ID.PkgPath],
		Options:       c.opts,
		Source:        c.source,
		ConfigExclude: c.exclude,
	}

	if !hasOutput(c.opts) {
		diags.AddWarning(diagnostic.CodeNothingEnabled,
			fmt.Sprintf("options %s disable every generated method", c.opts), name, "")

		return tp, false
	}

	valid := true

	for _, ex := range c.exclude {
		if c.info.Field(ex) == nil {
			diags.AddError(diagnostic.CodeUnknownField,
				fmt.Sprintf("excluded field %q not found", ex), name, ex,
				match.Suggest(ex, c.info.FieldNames(), MaxSuggestions)...)

			valid = false
		}
	}

	if !valid || !checkClashes(c, tp.Package, name, diags) {
		return tp, false
	}

	for i := range c.info.Fields {
		f := &c.info.Fields[i]

		reason, excluded := r.exclusion(f, c.exclude, name, diags)
		if excluded {
			tp.Excluded = append(tp.Excluded, ExcludedField{Field: f, Reason: reason})
			continue
		}

		tp.Fields = append(tp.Fields, f)
	}

	if len(tp.Fields) == 0 {
		diags.AddWarning(diagnostic.CodeNoFields,
			"no participating fields, all values of this type are equal", name, "")
	}

	if c.opts.Equals() && !c.opts.Hash() && len(tp.Excluded) > 0 {
		diags.AddWarning(diagnostic.CodeHashMismatch,
			"Hash is disabled but fields are excluded; the engine's field walk will hash excluded fields and may disagree with Equal",
			name, "")
	}

	return tp, true
}

// emitted is a name the generated file declares.
type emitted struct {
	name   string
	method bool
	option options.ClassOptions // the option that controls it
}

func emittedNames(typeName string, o options.ClassOptions) []emitted {
	var out []emitted

	if o.Equals() {
		out = append(out, emitted{"Equal", true, options.DisableEquals})
	}

	if o.Hash() {
		out = append(out, emitted{"Hash", true, options.DisableGetHashCode})
	}

	if o.ToString() {
		out = append(out, emitted{"String", true, options.DisableToString})
	}

	if o.With() {
		out = append(out,
			emitted{"With", true, options.DisableWith},
			emitted{typeName + "With", false, options.DisableWith})
	}

	if o.OperatorEquals() {
		out = append(out, emitted{"Equal" + typeName, false, options.EnableOperatorEquals})
	}

	return out
}

// checkClashes reports fields, methods and package-level names that the
// generated file would redeclare. Declarations from earlier generated files
// are not counted by the analyzer.
func checkClashes(c *candidate, pkg *analyze.PackageInfo, typeName string, diags *diagnostic.Diagnostics) bool {
	ok := true

	for _, e := range emittedNames(c.info.ID.Name, c.opts) {
		var what string

		switch {
		case e.method && c.info.Field(e.name) != nil:
			what = "field"
		case e.method && c.info.HasMethod(e.name):
			what = "method"
		case !e.method && pkg != nil && pkg.Declared[e.name]:
			what = "declaration"
		default:
			continue
		}

		diags.AddError(diagnostic.CodeNameClash,
			fmt.Sprintf("%s %s collides with generated code controlled by %s", what, e.name, e.option),
			typeName, e.name, e.option.String())

		ok = false
	}

	return ok
}

func (r *Resolver) exclusion(
	f *analyze.FieldInfo,
	configExclude []string,
	typeName string,
	diags *diagnostic.Diagnostics,
) (ExclusionReason, bool) {
	if f.Name == "_" {
		return ExcludedBlank, true
	}

	switch tag, ok := f.Tag.Lookup(TagKey); {
	case !ok:
	case tag == TagSkip:
		return ExcludedByTag, true
	case tag == TagComputed:
		return ExcludedComputed, true
	default:
		diags.AddWarning(diagnostic.CodeUnknownTag,
			fmt.Sprintf("unknown %s tag value %q, field is kept", TagKey, tag), typeName, f.Name,
			match.Suggest(tag, []string{TagSkip, TagComputed}, 1)...)
	}

	if slices.Contains(configExclude, f.Name) {
		return ExcludedByConfig, true
	}

	if isFunc(f.Type) {
		diags.AddWarning(diagnostic.CodeFuncField,
			"function fields have no structural equality and are left out", typeName, f.Name)

		return ExcludedFunc, true
	}

	return 0, false
}

func isFunc(t *analyze.TypeInfo) bool {
	if t == nil {
		return false
	}

	if t.GoType != nil {
		_, ok := t.GoType.Underlying().(*types.Signature)
		return ok
	}

	for t != nil && t.Kind == analyze.TypeKindAlias {
		t = t.Underlying
	}

	return t != nil && t.Kind == analyze.TypeKindFunc
}

func hasOutput(o options.ClassOptions) bool {
	return o.Equals() || o.Hash() || o.ToString() || o.With() || o.OperatorEquals()
}
