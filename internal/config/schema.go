package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// CurrentVersion is the only schema version understood.
const CurrentVersion = "1"

// DefaultEngine is the engine generated code calls when none is configured.
const DefaultEngine = "immutable-generator/structural.Default"

// ErrInvalidEngine is returned when an engine reference cannot be parsed.
var ErrInvalidEngine = errors.New("invalid engine reference")

// File represents the root of an immutable.yaml file.
type File struct {
	// Version of the schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Engine is the structural engine referenced by generated code.
	Engine string `yaml:"engine,omitempty"`

	// Types selects additional types, or overrides directive options.
	Types []TypeConfig `yaml:"types"`
}

// TypeConfig selects one struct type for generation.
type TypeConfig struct {
	// Name identifies the type: "Point", "geometry.Point" or
	// "immutable-generator/examples/geometry.Point".
	Name string `yaml:"name"`

	// Options replaces the directive options when set.
	Options StringOrArray `yaml:"options,omitempty"`

	// Exclude lists fields that do not take part in equality, hashing,
	// formatting, or With.
	Exclude []string `yaml:"exclude,omitempty"`
}

// StringOrArray accepts either a single string or a list in YAML.
type StringOrArray []string

// TypeRef is a parsed TypeConfig name.
type TypeRef struct {
	// Qualifier is empty, a package name, or a full import path.
	Qualifier string
	Name      string
}

// ParseTypeRef splits a configured type name at its last dot.
func ParseTypeRef(s string) TypeRef {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return TypeRef{Name: s}
	}

	return TypeRef{Qualifier: s[:i], Name: s[i+1:]}
}

// Matches reports whether the reference names the type pkgPath.name.
func (r TypeRef) Matches(pkgPath, pkgName, name string) bool {
	if r.Name != name {
		return false
	}

	return r.Qualifier == "" || r.Qualifier == pkgName || r.Qualifier == pkgPath
}

// String returns the reference as it was configured.
func (r TypeRef) String() string {
	if r.Qualifier == "" {
		return r.Name
	}

	return r.Qualifier + "." + r.Name
}

// EngineRef points at an exported *structural.Engine variable.
type EngineRef struct {
	PkgPath string
	Name    string
}

// ParseEngine parses "<import path>.<Var>".
func ParseEngine(s string) (EngineRef, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 || strings.LastIndex(s, "/") > i {
		return EngineRef{}, fmt.Errorf("%w: %q, expected <import path>.<Var>", ErrInvalidEngine, s)
	}

	ref := EngineRef{PkgPath: s[:i], Name: s[i+1:]}
	if !token.IsExported(ref.Name) {
		return EngineRef{}, fmt.Errorf("%w: %q is not exported", ErrInvalidEngine, ref.Name)
	}

	return ref, nil
}

// String returns the reference in configuration form.
func (e EngineRef) String() string {
	return e.PkgPath + "." + e.Name
}

// EngineRef returns the parsed engine, falling back to DefaultEngine.
func (f *File) EngineRef() (EngineRef, error) {
	if f == nil || f.Engine == "" {
		return ParseEngine(DefaultEngine)
	}

	return ParseEngine(f.Engine)
}
