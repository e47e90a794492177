// Package list implements the list command.
package list

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"immutable-generator/internal/cmd"
	"immutable-generator/internal/plan"
)

// Command returns the list command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "print the selected types and their participating fields",
		ArgsUsage: "[packages...]",
		Flags: append(cmd.Flags(),
			&cli.BoolFlag{
				Name:  "yaml",
				Usage: "print the selection as an immutable.yaml document",
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

	if c.Bool("yaml") {
		data, err := plan.ExportConfigYAML(env.Plan)
		if err != nil {
			return err
		}

		_, err = c.App.Writer.Write(data)

		return err
	}

	for i := range env.Plan.Types {
		printType(c, &env.Plan.Types[i])
	}

	return nil
}

// printType writes one block per type:
//
//	example.com/shapes.Point [EnableOperatorEquals] (directive)
//	  fields: X, Y
//	  excluded: cache (computed)
func printType(c *cli.Context, tp *plan.TypePlan) {
	w := c.App.Writer

	fmt.Fprintf(w, "%s [%s] (%s)\n", tp.Type.ID, tp.Options, tp.Source)
	fmt.Fprintf(w, "  fields: %s\n", strings.Join(tp.FieldNames(), ", "))

	if len(tp.Excluded) == 0 {
		return
	}

	excluded := make([]string, 0, len(tp.Excluded))
	for _, ex := range tp.Excluded {
		excluded = append(excluded, fmt.Sprintf("%s (%s)", ex.Field.Name, ex.Reason))
	}

	fmt.Fprintf(w, "  excluded: %s\n", strings.Join(excluded, ", "))
}
