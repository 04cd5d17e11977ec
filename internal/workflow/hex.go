package workflow

import (
	"context"
	"fmt"

	"github.com/woozymasta/hmap/hextext"
	"github.com/woozymasta/hmap/internal/logging"
	"github.com/woozymasta/hmap/texture"
)

// HexToPNG renders a legacy hex grid as a raw grayscale PNG.
func HexToPNG(ctx context.Context, in, out string, width, scale int) error {
	if scale < 0 {
		return fmt.Errorf("%w: scale %d", ErrInvalidOption, scale)
	}
	s, err := hextext.ReadFile(in, width)
	if err != nil {
		return err
	}
	if err := texture.WritePNG(out, texture.Scale(texture.ToGray(s), scale)); err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Info().
		Str("in", in).
		Str("out", out).
		Int("width", s.Width).
		Int("height", s.Height).
		Msg("converted hex to png")
	return nil
}

// PNGToHexOptions configures PNGToHex.
type PNGToHexOptions struct {
	Hex    hextext.Options
	Width  int
	Height int
	// Flip treats the image as being in preview orientation.
	Flip bool
}

// PNGToHex resamples an image to Width x Height and writes it as a hex grid.
func PNGToHex(ctx context.Context, in, out string, opts PNGToHexOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOption, opts.Width, opts.Height)
	}
	img, err := texture.ReadImage(in)
	if err != nil {
		return err
	}

	s := texture.Import(img, opts.Width, opts.Height, opts.Flip)
	if err := hextext.WriteFile(out, s, opts.Hex); err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Info().
		Str("in", in).
		Str("out", out).
		Int("width", s.Width).
		Int("height", s.Height).
		Msg("converted png to hex")
	return nil
}
