package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/hmap"
	"github.com/woozymasta/hmap/internal/config"
	"github.com/woozymasta/hmap/internal/logging"
)

var errMissingArg = errors.New("missing argument")

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("HMAPTOOL_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "log format (pretty, json)",
			Value:   logging.FormatPretty,
			Sources: cli.EnvVars("HMAPTOOL_LOG_FORMAT"),
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path to config file (default: user config dir/hmaptool/config.yaml)",
			Sources: cli.EnvVars("HMAPTOOL_CONFIG"),
		},
	}
}

func surfaceFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "surface",
		Aliases:     []string{"s"},
		Usage:       "surface to operate on (max, min)",
		Value:       "max",
		Destination: dest,
	}
}

func outFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "out",
		Aliases:     []string{"o"},
		Usage:       "output path",
		Required:    true,
		Destination: dest,
	}
}

func withCommon(flags ...cli.Flag) []cli.Flag {
	return append(flags, commonFlags()...)
}

// setup loads the config file and attaches the configured logger to ctx.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return ctx, cfg, err
	}

	level, format := cmd.String("log-level"), cmd.String("log-format")
	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		level = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		format = cfg.LogFormat
	}

	log, err := logging.New(os.Stderr, level, format)
	if err != nil {
		return ctx, cfg, err
	}
	ctx = logging.WithLogger(ctx, log)
	return logging.WithStr(ctx, "command", cmd.Name), cfg, nil
}

// inputArg returns the first positional argument.
func inputArg(cmd *cli.Command, what string) (string, error) {
	if cmd.Args().Len() < 1 {
		return "", fmt.Errorf("%w: %s", errMissingArg, what)
	}
	return cmd.Args().First(), nil
}

func parseSurface(cmd *cli.Command, cfg config.Config, name string) (hmap.Selector, error) {
	if cfg.Surface != "" && !cmd.IsSet("surface") {
		name = cfg.Surface
	}
	return hmap.ParseSelector(name)
}
