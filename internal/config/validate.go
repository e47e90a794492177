package config

import (
	"fmt"

	"immutable-generator/internal/diagnostic"
	"immutable-generator/internal/match"
	"immutable-generator/options"
)

// Validate checks the parts of a File that do not depend on loaded
// packages: version, engine reference, type names, and option names.
// Type and field existence are checked when the plan is built.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("config_is_nil", "config file is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError(diagnostic.CodeBadVersion,
			fmt.Sprintf("unsupported version %q, expected %q", f.Version, CurrentVersion), "", "")
	}

	if _, err := f.EngineRef(); err != nil {
		res.AddError(diagnostic.CodeUnknownEngine, err.Error(), "", "")
	}

	seen := map[string]struct{}{}

	for i := range f.Types {
		tc := &f.Types[i]
		if tc.Name == "" {
			res.AddError(diagnostic.CodeEmptyTypeName, fmt.Sprintf("types[%d] has no name", i), "", "")
			continue
		}

		if _, ok := seen[tc.Name]; ok {
			res.AddError(diagnostic.CodeDuplicateType, fmt.Sprintf("type %q is listed twice", tc.Name), tc.Name, "")
			continue
		}

		seen[tc.Name] = struct{}{}

		validateOptions(res, tc)
	}

	return res
}

func validateOptions(res *diagnostic.Diagnostics, tc *TypeConfig) {
	for _, name := range tc.Options {
		if _, err := options.Parse(name); err != nil {
			res.AddError(diagnostic.CodeUnknownOption,
				fmt.Sprintf("unknown option %q", name), tc.Name, "",
				match.Suggest(name, options.Names(), 2)...)
		}
	}
}

// ParsedOptions parses the configured option names. ok is false when the entry
// sets no options, so the directive's options stay in effect.
func (tc *TypeConfig) ParsedOptions() (opts options.ClassOptions, ok bool, err error) {
	if tc.Options == nil {
		return options.None, false, nil
	}

	opts, err = options.Parse(tc.Options...)
	if err != nil {
		return options.None, true, err
	}

	return opts, true, nil
}
