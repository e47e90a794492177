// Package cmd holds the load, validate, and plan steps shared by the
// immutable-gen commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"immutable-generator/internal/analyze"
	"immutable-generator/internal/config"
	"immutable-generator/internal/gen"
	"immutable-generator/internal/logutil"
	"immutable-generator/internal/plan"
)

var (
	// ErrInvalidConfig is returned when the config file has errors.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidPlan is returned when resolution reports errors.
	ErrInvalidPlan = errors.New("cannot plan generation")
)

// Flags shared by every command that loads packages.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:      "config",
			Aliases:   []string{"c"},
			Usage:     "read type selection from `FILE` (default: immutable.yaml in the first package, if present)",
			TakesFile: true,
			EnvVars:   []string{"IMMUTABLE_CONFIG"},
		},
		&cli.PathFlag{
			Name:  "dir",
			Usage: "resolve package patterns in `DIR`",
		},
	}
}

// Env is what a command works with after planning.
type Env struct {
	Log    *logrus.Logger
	Config *config.File
	Plan   *plan.Plan
	Gen    gen.GeneratorConfig
}

// Setup loads the packages named by the command arguments ("." if none),
// reads the config, and resolves the plan. Diagnostics are logged as they
// are found.
func Setup(c *cli.Context) (*Env, error) {
	env := &Env{
		Log: logutil.New(c),
		Gen: gen.DefaultGeneratorConfig(),
	}

	patterns := c.Args().Slice()
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = c.Path("dir")
	analyzer.TolerateSuffix = env.Gen.FileSuffix

	graph, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	env.Log.WithField("packages", len(graph.Packages)).Debug("loaded packages")

	env.Config, err = loadConfig(c.Path("config"), graph, env.Log)
	if err != nil {
		return nil, err
	}

	p, err := plan.NewResolver(graph, env.Config).Resolve()
	if err != nil {
		return nil, err
	}

	p.Diagnostics.Log(env.Log)

	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %d error(s)", ErrInvalidPlan, len(p.Diagnostics.Errors))
	}

	env.Plan = p

	return env, nil
}

// loadConfig reads an explicit config path, or immutable.yaml from the
// first loaded package's directory. No file is not an error.
func loadConfig(path string, graph *analyze.TypeGraph, log logrus.FieldLogger) (*config.File, error) {
	if path == "" {
		path = defaultConfigPath(graph)
		if path == "" {
			return nil, nil
		}
	}

	f, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	log.WithField("path", path).Debug("loaded config")

	diags := config.Validate(f)
	diags.Log(log)

	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, path)
	}

	return f, nil
}

func defaultConfigPath(graph *analyze.TypeGraph) string {
	paths := graph.PackagePaths()
	if len(paths) == 0 {
		return ""
	}

	dir := graph.Packages[paths[0]].Dir
	if dir == "" {
		return ""
	}

	candidate := filepath.Join(dir, config.DefaultFileName)
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}

	return candidate
}
