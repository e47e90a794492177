package gen

import (
	"go/types"
	"slices"
	"strconv"
	"strings"

	"immutable-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one generated file and hands out
// collision-free qualifiers.
type importSet struct {
	self    string
	byPath  map[string]string
	byAlias map[string]string
}

func newImportSet(selfPath string) *importSet {
	return &importSet{
		self:    selfPath,
		byPath:  map[string]string{},
		byAlias: map[string]string{},
	}
}

// add registers pkgPath and returns its alias, or "" for the file's own
// package.
func (s *importSet) add(pkgPath, name string) string {
	if pkgPath == "" || pkgPath == s.self {
		return ""
	}

	if alias, ok := s.byPath[pkgPath]; ok {
		return alias
	}

	if name == "" {
		name = common.PkgAlias(pkgPath)
	}

	alias := name
	for i := 2; ; i++ {
		if _, taken := s.byAlias[alias]; !taken {
			break
		}

		alias = name + strconv.Itoa(i)
	}

	s.byPath[pkgPath] = alias
	s.byAlias[alias] = pkgPath

	return alias
}

// ref returns the qualifier prefix for pkgPath, "alias." or "".
func (s *importSet) ref(pkgPath, name string) string {
	if alias := s.add(pkgPath, name); alias != "" {
		return alias + "."
	}

	return ""
}

// qualifier adapts the set for types.TypeString.
func (s *importSet) qualifier() types.Qualifier {
	return func(pkg *types.Package) string {
		return s.add(pkg.Path(), pkg.Name())
	}
}

// sorted returns the imports ordered by path. Aliases are dropped where the
// path's last element already names the package.
func (s *importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))
	for path, alias := range s.byPath {
		spec := importSpec{Path: path}
		if alias != common.PkgAlias(path) {
			spec.Alias = alias
		}

		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}
