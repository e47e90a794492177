// Package logutil configures loggers from a cli context.
package logutil

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Flags returns the global logging flags read by New.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "logfmt",
			Aliases: []string{"f"},
			Usage:   "`format` logs as text, json or none",
			Value:   "text",
			EnvVars: []string{"IMMUTABLE_LOGFMT"},
		},
		&cli.StringFlag{
			Name:    "loglvl",
			Usage:   "set logging `level` to trace, debug, info, warn, error or fatal",
			Value:   "info",
			EnvVars: []string{"IMMUTABLE_LOGLVL"},
		},
		&cli.BoolFlag{
			Name:    "prettyprint",
			Aliases: []string{"pp"},
			Usage:   "pretty-print JSON output",
			Hidden:  true,
		},
	}
}

// New logger from a cli context. Logs go to the app's ErrWriter.
func New(c *cli.Context) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(c.App.ErrWriter)
	log.SetLevel(Level(c))
	log.SetFormatter(Formatter(c))

	if c.String("logfmt") == "none" {
		log.SetOutput(io.Discard)
	}

	return log
}

// Level returns the level selected by the loglvl flag.
func Level(c *cli.Context) logrus.Level {
	switch c.String("loglvl") {
	case "trace", "t":
		return logrus.TraceLevel
	case "debug", "d":
		return logrus.DebugLevel
	case "info", "i":
		return logrus.InfoLevel
	case "warn", "warning", "w":
		return logrus.WarnLevel
	case "error", "err", "e":
		return logrus.ErrorLevel
	case "fatal", "f":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// Formatter returns the formatter selected by the logfmt flag.
func Formatter(c *cli.Context) logrus.Formatter {
	switch c.String("logfmt") {
	case "json":
		return &logrus.JSONFormatter{PrettyPrint: c.Bool("prettyprint")}
	default:
		return &logrus.TextFormatter{DisableTimestamp: true}
	}
}
