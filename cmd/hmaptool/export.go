package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/hmap/hextext"
	"github.com/woozymasta/hmap/internal/workflow"
	"github.com/woozymasta/hmap/texture"
)

func exportCmd() *cli.Command {
	var (
		surface       string
		out           string
		format        string
		scale         int
		noFlip        bool
		noNormalize   bool
		noIndent      bool
		textureFormat string
		noCompress    bool
		mipmaps       int
	)

	return &cli.Command{
		Name:      "export",
		Usage:     "Export one surface as PNG, hex text or EDDS texture",
		ArgsUsage: "<file.dat>",
		Flags: withCommon(
			surfaceFlag(&surface),
			outFlag(&out),
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "png, hex or edds (default: from --out extension)", Destination: &format},
			&cli.IntFlag{Name: "scale", Usage: "PNG nearest neighbour scale factor", Value: 1, Destination: &scale},
			&cli.BoolFlag{Name: "no-flip", Usage: "keep storage orientation", Destination: &noFlip},
			&cli.BoolFlag{Name: "no-normalize", Usage: "keep raw heights instead of stretching to 0..255", Destination: &noNormalize},
			&cli.BoolFlag{Name: "no-indent", Usage: "hex: do not indent lines", Destination: &noIndent},
			&cli.StringFlag{Name: "texture-format", Usage: "edds: bgra8, rgba8, bc4, dxt1 or dxt5", Value: "bgra8", Destination: &textureFormat},
			&cli.BoolFlag{Name: "no-compress", Usage: "edds: store COPY blocks only", Destination: &noCompress},
			&cli.IntFlag{Name: "mipmaps", Usage: "edds: mip levels to write (0 = full chain)", Destination: &mipmaps},
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

			flip, normalize, indent, compress := !noFlip, !noNormalize, !noIndent, !noCompress
			applyPreviewConfig(cmd, cfg, &flip, &normalize, &scale)
			applyHexConfig(cmd, cfg, nil, &indent)
			applyTextureConfig(cmd, cfg, &textureFormat, &compress, &mipmaps)

			opts := workflow.ExportOptions{
				Surface: which,
				Preview: texture.PreviewOptions{Normalize: normalize, Flip: flip, Scale: scale},
				Hex:     hextext.Options{Indent: indent},
			}
			if format != "" {
				if opts.Format, err = workflow.ParseFormat(format); err != nil {
					return err
				}
			}
			tf, ok := texture.ParseFormat(textureFormat)
			if !ok {
				return fmt.Errorf("%w: texture format %q", texture.ErrInvalidFormat, textureFormat)
			}
			opts.Texture = &texture.WriteOptions{Format: tf, Compress: compress, MaxMipMaps: mipmaps}

			return workflow.Export(ctx, src, out, opts)
		},
	}
}
