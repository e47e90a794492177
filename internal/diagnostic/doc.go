// Package diagnostic collects structured errors, warnings, and notes
// produced while loading configuration and planning generation.
//
// Key capabilities:
//   - Unknown type, field, and option reports with "did you mean" suggestions
//   - Excluded field warnings
//   - Log output through a logrus FieldLogger
package diagnostic
