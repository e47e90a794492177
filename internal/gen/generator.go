package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"immutable-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FileSuffix is appended to the snake_case type name.
	FileSuffix string
	// StructuralPkg is the import path of the structural engine package.
	StructuralPkg string
	// OptionalPkg is the import path of the optional package.
	OptionalPkg string
	// GenerateComments enables doc comments on generated members.
	GenerateComments bool
	// DebugUnformatted writes a .unformatted.go sidecar when formatting fails.
	DebugUnformatted bool
	// Workers bounds concurrent rendering; zero means GOMAXPROCS.
	Workers int
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       "_immutable.go",
		StructuralPkg:    "immutable-generator/structural",
		OptionalPkg:      "immutable-generator/optional",
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the type belongs to.
	Dir string
	// Filename is the name of the file (e.g., "point_immutable.go").
	Filename string
	// TypeName is the fully qualified type the file was generated for.
	TypeName string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one file per planned type. Types render concurrently;
// the result keeps the plan's order.
func (g *Generator) Generate(ctx context.Context, p *plan.Plan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, len(p.Types))

	eg, ctx := errgroup.WithContext(ctx)

	workers := g.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg.SetLimit(workers)

	for i := range p.Types {
		tp := &p.Types[i]

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := g.generateType(p, tp)
			if err != nil {
				return fmt.Errorf("generating %s: %w", tp.Type.ID, err)
			}

			files[i] = *file

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

// generateType generates the file for a single type.
func (g *Generator) generateType(p *plan.Plan, tp *plan.TypePlan) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(p, tp)
	if err != nil {
		return nil, err
	}

	file := &GeneratedFile{
		Dir:      tp.Package.Dir,
		Filename: g.filename(tp),
		TypeName: tp.Type.ID.String(),
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: keep the unformatted code around to aid debugging.
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(file.Dir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

func (g *Generator) filename(tp *plan.TypePlan) string {
	return snakeCase(tp.Type.ID.Name) + g.config.FileSuffix
}

// snakeCase lowers a Go identifier, splitting words at case changes:
// "Point" → "point", "HTTPServer" → "http_server".
func snakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				sb.WriteByte('_')
			}
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
