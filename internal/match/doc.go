// Package match ranks known names against a misspelled one so diagnostics
// can say "did you mean ...".
//
// Key functions:
//   - Levenshtein: edit distance between two strings
//   - NormalizeIdent: case and separator folding for identifiers
//   - Suggest: closest candidates above a similarity threshold
package match
