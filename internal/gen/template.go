package gen

import "text/template"

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by immutable-gen. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{- if .Options.Equals}}{{template "equal" .}}{{end}}
{{- if .Options.Hash}}{{template "hash" .}}{{end}}
{{- if .Options.ToString}}{{template "string" .}}{{end}}
{{- if .Options.With}}{{template "with" .}}{{end}}
{{- if .Options.OperatorEquals}}{{template "operator" .}}{{end}}
{{- define "equal"}}
{{if .GenerateComments}}// Equal reports whether {{.Receiver}} and other hold structurally equal fields.
{{end}}func ({{.Receiver}} {{.TypeRef}}) Equal(other {{.TypeRef}}) bool {
{{- if .Fields}}
	return {{range $i, $f := .Fields}}{{if $i}} &&
		{{end}}{{$.Engine}}.Equal({{$.Receiver}}.{{$f.Name}}, other.{{$f.Name}}){{end}}
{{- else}}
	return true
{{- end}}
}
{{end}}
{{- define "hash"}}
{{if .GenerateComments}}// Hash combines the field hashes; equal values hash alike.
{{end}}func ({{.Receiver}} {{.TypeRef}}) Hash() int32 {
	return {{.Engine}}.Combine({{range $i, $f := .Fields}}{{if $i}}, {{end}}{{$.Receiver}}.{{$f.Name}}{{end}})
}
{{end}}
{{- define "string"}}
{{if .GenerateComments}}// String formats {{.Receiver}} as "{{.Name}} { field=value, ... }".
{{end}}func ({{.Receiver}} {{.TypeRef}}) String() string {
{{- if .Fields}}
	return {{.Engine}}.FormatComposite("{{.Name}}",
{{- range .Fields}}
		{{$.Structural}}Property{Name: "{{.Name}}", Value: {{$.Receiver}}.{{.Name}}},
{{- end}}
	)
{{- else}}
	return {{.Engine}}.FormatComposite("{{.Name}}")
{{- end}}
}
{{end}}
{{- define "with"}}
{{if .GenerateComments}}// {{.WithName}} holds per-field overrides for {{.Name}}.With. Absent fields keep
// their current value; present ones replace it, even with nil or zero.
{{end}}type {{.WithName}}{{.TypeParamsDecl}} struct {
{{- range .Fields}}
	{{.Name}} {{$.Optional}}Value[{{.Type}}]
{{- end}}
}

{{if .GenerateComments}}// With returns a copy of {{.Receiver}} with the present overrides applied.
{{end}}func ({{.Receiver}} {{.TypeRef}}) With(changes {{.WithRef}}) {{.TypeRef}} {
{{- range .Fields}}
	{{$.Receiver}}.{{.Name}} = changes.{{.Name}}.Apply({{$.Receiver}}.{{.Name}})
{{- end}}

	return {{.Receiver}}
}
{{end}}
{{- define "operator"}}
{{if .GenerateComments}}// Equal{{.Name}} reports whether a and b are both nil or point to equal values.
{{end}}func Equal{{.Name}}{{.TypeParamsDecl}}(a, b *{{.TypeRef}}) bool {
	if a == nil || b == nil {
		return a == b
	}

	return {{if .Options.Equals}}a.Equal(*b){{else}}{{.Engine}}.Equal(*a, *b){{end}}
}
{{end}}`))
