package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/hmap/internal/workflow"
)

func updateCmd() *cli.Command {
	var (
		surface string
		in      string
		out     string
		format  string
		noFlip  bool
	)

	return &cli.Command{
		Name:      "update",
		Usage:     "Replace one surface with an edited PNG, hex text or EDDS texture",
		ArgsUsage: "<file.dat>",
		Flags: withCommon(
			surfaceFlag(&surface),
			outFlag(&out),
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "edited surface file", Required: true, Destination: &in},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "png, hex or edds (default: from --in extension)", Destination: &format},
			&cli.BoolFlag{Name: "no-flip", Usage: "input image is in storage orientation", Destination: &noFlip},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			src, err := inputArg(cmd, "container file")
			if err != nil {
				return err
			}
			which, err := parseSurface(cmd, cfg, surface)
			if err != nil {
				return err
			}

			flip := !noFlip
			if cfg.Flip != nil && !cmd.IsSet("no-flip") {
				flip = *cfg.Flip
			}

			opts := workflow.UpdateOptions{Surface: which, Flip: flip}
			if format != "" {
				if opts.Format, err = workflow.ParseFormat(format); err != nil {
					return err
				}
			}
			return workflow.Update(ctx, src, out, in, opts)
		},
	}
}
