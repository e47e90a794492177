// Package config provides the YAML schema, parsing, and validation for
// immutable.yaml, the optional file that selects types for generation
// alongside the //immutable:generate directive.
//
// # Schema Overview
//
//	version: "1"
//	# Engine used by generated code, as "<import path>.<exported var>".
//	engine: immutable-generator/structural.Default
//	types:
//	  - name: Point                # bare name, "pkg.Name" or "<import path>.Name"
//	    options: [EnableOperatorEquals]
//	  - name: geometry.Polygon
//	    options: DisableToString   # a single string is accepted
//	    exclude:
//	      - cachedArea
//
// Options listed here replace the ones in the type's directive. Names are
// matched case-insensitively; unknown option names are reported with
// suggestions.
package config
