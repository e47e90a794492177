// Package plan provides the resolution pipeline that turns a type graph
// and an optional config file into a Plan consumed by code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph with directives
//  2. Load YAML (optional) → validate
//  3. Select types from directives and config entries; config options
//     replace directive options
//  4. Decide, per field, whether it takes part in the generated methods
//  5. Emit diagnostics (unknown names with suggestions, excluded fields,
//     types with nothing to generate)
package plan
