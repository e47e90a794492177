package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"immutable-generator/internal/common"
)

// Diagnostic codes reported by the config and plan stages.
const (
	CodeUnknownType    = "unknown-type"
	CodeAmbiguousType  = "ambiguous-type"
	CodeUnknownField   = "unknown-field"
	CodeUnknownOption  = "unknown-option"
	CodeNotStruct      = "not-struct"
	CodeDuplicateType  = "duplicate-type"
	CodeFuncField      = "func-field"
	CodeExcludedField  = "excluded-field"
	CodeNoFields       = "no-fields"
	CodeBadVersion     = "bad-version"
	CodeUnknownEngine  = "unknown-engine"
	CodeEmptyTypeName  = "empty-type-name"
	CodeNothingEnabled = "nothing-enabled"
	CodeUnknownTag     = "unknown-tag"
	CodeHashMismatch   = "hash-mismatch"
	CodeNameClash      = "name-clash"
)

// Diagnostics holds all diagnostic information from a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypeName identifies the type this relates to (if any).
	TypeName string
	// Field identifies the field this relates to (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, field string, suggestions ...string) {
	d.Errors = append(d.Errors, newDiagnostic(DiagnosticError, code, message, typeName, field, suggestions))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, field string, suggestions ...string) {
	d.Warnings = append(d.Warnings, newDiagnostic(DiagnosticWarning, code, message, typeName, field, suggestions))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, field string) {
	d.Infos = append(d.Infos, newDiagnostic(DiagnosticInfo, code, message, typeName, field, nil))
}

func newDiagnostic(sev DiagnosticSeverity, code, message, typeName, field string, suggestions []string) Diagnostic {
	return Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		Field:       field,
		Suggestions: suggestions,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Log writes every diagnostic to log, errors first, at the matching level.
func (d *Diagnostics) Log(log logrus.FieldLogger) {
	for _, e := range d.Errors {
		e.entry(log).Error(e.Message)
	}

	for _, w := range d.Warnings {
		w.entry(log).Warn(w.Message)
	}

	for _, i := range d.Infos {
		i.entry(log).Info(i.Message)
	}
}

func (d Diagnostic) entry(log logrus.FieldLogger) logrus.FieldLogger {
	fields := logrus.Fields{"code": d.Code}
	if d.TypeName != "" {
		fields["type"] = d.TypeName
	}

	if d.Field != "" {
		fields["field"] = d.Field
	}

	if len(d.Suggestions) > 0 {
		fields["suggest"] = strings.Join(d.Suggestions, ", ")
	}

	return log.WithFields(fields)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypeName != "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
