package workflow

import (
	"context"
	"fmt"

	"github.com/woozymasta/hmap"
	"github.com/woozymasta/hmap/hextext"
	"github.com/woozymasta/hmap/internal/logging"
	"github.com/woozymasta/hmap/texture"
)

// ExportOptions configures Export.
type ExportOptions struct {
	// Texture configures EDDS output; nil uses texture.DefaultWriteOptions.
	Texture *texture.WriteOptions
	// Format of the output file; empty infers it from the output extension.
	Format Format
	// Preview controls normalisation, orientation and scale of PNG output.
	// EDDS output applies Normalize and Flip only. Hex output is always raw.
	Preview texture.PreviewOptions
	// Hex controls the hex text layout.
	Hex     hextext.Options
	Surface hmap.Selector
}

// Export writes one surface of the container src to dst.
func Export(ctx context.Context, src, dst string, opts ExportOptions) error {
	format := opts.Format
	if format == "" {
		var err error
		if format, err = FormatFromPath(dst); err != nil {
			return err
		}
	}
	if opts.Preview.Scale < 0 {
		return fmt.Errorf("%w: scale %d", ErrInvalidOption, opts.Preview.Scale)
	}

	hm, err := Load(ctx, src)
	if err != nil {
		return err
	}
	s := hm.Surface(opts.Surface)
	if s == nil {
		return fmt.Errorf("%w: %d", hmap.ErrInvalidSelector, opts.Surface)
	}

	switch format {
	case FormatPNG:
		err = texture.WritePNG(dst, texture.Preview(s, opts.Preview))
	case FormatHex:
		err = hextext.WriteFile(dst, s, opts.Hex)
	case FormatEDDS:
		err = texture.WriteEDDS(dst, orient(s, opts.Preview), opts.Texture)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Info().
		Str("file", src).
		Str("surface", opts.Surface.String()).
		Str("format", string(format)).
		Str("out", dst).
		Msg("exported surface")
	return nil
}

// orient applies the value and orientation parts of a preview to s.
func orient(s *hmap.Surface, opts texture.PreviewOptions) *hmap.Surface {
	if opts.Normalize {
		s = texture.Normalize(s)
	}
	if opts.Flip {
		s = texture.FlipVertical(s)
	}
	return s
}
