package common

import (
	"path"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the fallback name for enum values out of range.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// ReceiverName returns the conventional short receiver for a type name:
// its first letter, lower-cased.
func ReceiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || r == '_' {
		return "v"
	}

	return string(unicode.ToLower(r))
}
