// Package main provides the CLI entrypoint for immutable-gen.
//
// immutable-gen generates value-semantics methods for Go structs:
//   - Parses Go packages (AST + go/types) to find structs marked with
//     //immutable:generate or listed in immutable.yaml
//   - Emits Equal, Hash, String, With, and a nil-safe pointer helper
//     backed by the structural engine
//   - Checks that generated files are up to date
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"immutable-generator/internal/cmd/check"
	"immutable-generator/internal/cmd/generate"
	"immutable-generator/internal/cmd/list"
	"immutable-generator/internal/logutil"
)

var commands = []*cli.Command{
	generate.Command(),
	check.Command(),
	list.Command(),
}

func main() {
	run(&cli.App{
		Name:                 "immutable-gen",
		Usage:                "generate value semantics for Go structs",
		UsageText:            "immutable-gen [global options] command [command options] [packages...]",
		EnableBashCompletion: true,
		Flags:                logutil.Flags(),
		Commands:             commands,
	})
}

func run(app *cli.App) {
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
