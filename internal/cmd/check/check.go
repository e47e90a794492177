// Package check implements the check command.
package check

import (
	"github.com/urfave/cli/v2"

	"immutable-generator/internal/cmd"
	"immutable-generator/internal/gen"
)

// Command returns the check command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "validate selections and report generated files that are out of date",
		ArgsUsage: "[packages...]",
		Flags: append(cmd.Flags(),
			&cli.BoolFlag{
				Name:  "no-comments",
				Usage: "compare against files generated with --no-comments",
			},
		),
		Action: run,
	}
}

func run(c *cli.Context) error {
	env, err := cmd.Setup(c)
	if err != nil {
		return err
	}

	cfg := env.Gen
	cfg.GenerateComments = !c.Bool("no-comments")

	files, err := gen.NewGenerator(cfg).Generate(c.Context, env.Plan)
	if err != nil {
		return err
	}

	stale, err := gen.Stale(files)
	if err != nil {
		return err
	}

	for _, f := range stale {
		env.Log.WithField("type", f.TypeName).Warn("out of date: " + f.Path())
	}

	if len(stale) > 0 {
		return cli.Exit("generated files are out of date, run immutable-gen generate", 1)
	}

	env.Log.WithField("types", len(files)).Info("generated files are up to date")

	return nil
}
