package plan

import (
	"immutable-generator/internal/analyze"
	"immutable-generator/internal/common"
	"immutable-generator/internal/config"
	"immutable-generator/internal/diagnostic"
	"immutable-generator/options"
)

// Plan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// Types is the list of selected types, sorted by TypeID.
	Types []TypePlan
	// Engine is the structural engine generated code calls.
	Engine config.EngineRef
	// TypeGraph holds all analyzed types and packages.
	TypeGraph *analyze.TypeGraph
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// TypePlan describes the methods to generate for one struct.
type TypePlan struct {
	// Type is the selected struct.
	Type *analyze.TypeInfo
	// Package is the package declaring Type.
	Package *analyze.PackageInfo
	// Options are the effective generation options.
	Options options.ClassOptions
	// Source tells where the selection came from.
	Source SelectionSource
	// Fields take part in Equal, Hash, String, and With, in declaration order.
	Fields []*analyze.FieldInfo
	// Excluded are the fields left out, with the reason.
	Excluded []ExcludedField
	// ConfigExclude are the exclusions named in the config file.
	ConfigExclude []string
}

// ExcludedField is a struct field that does not take part in the value.
type ExcludedField struct {
	Field  *analyze.FieldInfo
	Reason ExclusionReason
}

// SelectionSource indicates where a type selection originated.
type SelectionSource int

const (
	// SourceDirective - from a //immutable:generate comment.
	SourceDirective SelectionSource = iota
	// SourceConfig - from an immutable.yaml entry.
	SourceConfig
	// SourceBoth - directive and config entry; config options win.
	SourceBoth
)

// String returns a human-readable source name.
func (s SelectionSource) String() string {
	switch s {
	case SourceDirective:
		return "directive"
	case SourceConfig:
		return "config"
	case SourceBoth:
		return "directive+config"
	default:
		return common.UnknownStr
	}
}

// ExclusionReason explains why a field was left out.
type ExclusionReason int

const (
	// ExcludedByTag - tagged `immutable:"-"`.
	ExcludedByTag ExclusionReason = iota
	// ExcludedComputed - tagged `immutable:"computed"`, derived from other fields.
	ExcludedComputed
	// ExcludedByConfig - listed under exclude in the config file.
	ExcludedByConfig
	// ExcludedFunc - function values have no structural equality.
	ExcludedFunc
	// ExcludedBlank - the blank identifier cannot be read.
	ExcludedBlank
)

// String returns a human-readable reason.
func (r ExclusionReason) String() string {
	switch r {
	case ExcludedByTag:
		return "tag"
	case ExcludedComputed:
		return "computed"
	case ExcludedByConfig:
		return "config"
	case ExcludedFunc:
		return "func"
	case ExcludedBlank:
		return "blank"
	default:
		return common.UnknownStr
	}
}

// TagKey is the struct tag read for field exclusion.
const TagKey = "immutable"

// Tag values understood under TagKey.
const (
	TagSkip     = "-"
	TagComputed = "computed"
)

// FieldNames returns the participating field names in order.
func (tp *TypePlan) FieldNames() []string {
	names := make([]string, 0, len(tp.Fields))
	for _, f := range tp.Fields {
		names = append(names, f.Name)
	}

	return names
}

// Lookup returns the plan for id, or nil.
func (p *Plan) Lookup(id analyze.TypeID) *TypePlan {
	for i := range p.Types {
		if p.Types[i].Type.ID == id {
			return &p.Types[i]
		}
	}

	return nil
}
