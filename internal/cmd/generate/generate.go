// Package generate implements the generate command.
package generate

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"immutable-generator/internal/cmd"
	"immutable-generator/internal/gen"
)

// Command returns the generate command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "write <type>_immutable.go files next to the selected structs",
		ArgsUsage: "[packages...]",
		Flags: append(cmd.Flags(),
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "print the files that would be written instead of writing them",
			},
			&cli.BoolFlag{
				Name:  "no-comments",
				Usage: "omit doc comments on generated members",
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
	cfg.DebugUnformatted = env.Log.IsLevelEnabled(logrus.DebugLevel)

	files, err := gen.NewGenerator(cfg).Generate(c.Context, env.Plan)
	if err != nil {
		return err
	}

	if c.Bool("dry-run") {
		for _, f := range files {
			fmt.Fprintln(c.App.Writer, f.Path())
		}

		return nil
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, f := range files {
		env.Log.WithField("type", f.TypeName).Info("wrote " + f.Path())
	}

	return nil
}
