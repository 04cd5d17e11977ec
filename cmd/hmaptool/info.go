package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/hmap/internal/workflow"
)

func infoCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Print the header and surface ranges of a container",
		ArgsUsage: "<file.dat>",
		Flags: withCommon(
			&cli.BoolFlag{Name: "json", Usage: "print as JSON", Destination: &asJSON},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, _, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			path, err := inputArg(cmd, "container file")
			if err != nil {
				return err
			}

			info, err := workflow.Inspect(ctx, path)
			if err != nil {
				return err
			}
			if asJSON {
				return info.WriteJSON(os.Stdout)
			}
			return info.WriteText(os.Stdout)
		},
	}
}
