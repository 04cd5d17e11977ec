package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/hmap/hextext"
	"github.com/woozymasta/hmap/internal/workflow"
)

func hexToPNGCmd() *cli.Command {
	var (
		out   string
		width int
		scale int
	)

	return &cli.Command{
		Name:      "hex2png",
		Usage:     "Render a legacy hex grid as a grayscale PNG",
		ArgsUsage: "<grid.txt>",
		Flags: withCommon(
			outFlag(&out),
			&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: "row width", Value: hextext.DefaultWidth, Destination: &width},
			&cli.IntFlag{Name: "scale", Usage: "nearest neighbour scale factor", Value: 1, Destination: &scale},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			in, err := inputArg(cmd, "hex file")
			if err != nil {
				return err
			}

			applyHexConfig(cmd, cfg, &width, nil)
			if cfg.Scale != nil && !cmd.IsSet("scale") {
				scale = *cfg.Scale
			}
			return workflow.HexToPNG(ctx, in, out, width, scale)
		},
	}
}

func pngToHexCmd() *cli.Command {
	var (
		out      string
		width    int
		height   int
		preview  bool
		noIndent bool
	)

	return &cli.Command{
		Name:      "png2hex",
		Usage:     "Resample an image to the grid and write it as legacy hex text",
		ArgsUsage: "<image.png>",
		Flags: withCommon(
			outFlag(&out),
			&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: "grid width", Value: hextext.DefaultWidth, Destination: &width},
			&cli.IntFlag{Name: "height", Usage: "grid height", Value: hextext.DefaultHeight, Destination: &height},
			&cli.BoolFlag{Name: "preview", Usage: "image is in preview orientation", Destination: &preview},
			&cli.BoolFlag{Name: "no-indent", Usage: "do not indent lines", Destination: &noIndent},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			in, err := inputArg(cmd, "image file")
			if err != nil {
				return err
			}

			indent := !noIndent
			applyHexConfig(cmd, cfg, &width, &indent)
			return workflow.PNGToHex(ctx, in, out, workflow.PNGToHexOptions{
				Width:  width,
				Height: height,
				Flip:   preview,
				Hex:    hextext.Options{Indent: indent},
			})
		},
	}
}
