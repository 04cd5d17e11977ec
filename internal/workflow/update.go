package workflow

import (
	"context"
	"fmt"

	"github.com/woozymasta/hmap"
	"github.com/woozymasta/hmap/hextext"
	"github.com/woozymasta/hmap/internal/logging"
	"github.com/woozymasta/hmap/texture"
)

// UpdateOptions configures Update.
type UpdateOptions struct {
	// Texture configures EDDS decoding.
	Texture *texture.ReadOptions
	// Format of the input file; empty infers it from the input extension.
	Format Format
	// Flip treats image and texture input as being in preview orientation.
	// Hex input is always in storage orientation.
	Flip    bool
	Surface hmap.Selector
}

// Update replaces one surface of the container src with the contents of in
// and writes the result to dst. Images and textures are resampled to the
// container grid; hex grids must match it exactly.
func Update(ctx context.Context, src, dst, in string, opts UpdateOptions) error {
	format := opts.Format
	if format == "" {
		var err error
		if format, err = FormatFromPath(in); err != nil {
			return err
		}
	}

	hm, err := Load(ctx, src)
	if err != nil {
		return err
	}

	replacement, err := readReplacement(in, format, hm.Width(), hm.Height(), opts)
	if err != nil {
		return err
	}

	if err := hmap.UpdateFile(src, dst, replacement, opts.Surface); err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Info().
		Str("file", src).
		Str("surface", opts.Surface.String()).
		Str("in", in).
		Str("out", dst).
		Msg("updated surface")
	return nil
}

func readReplacement(path string, format Format, width, height int, opts UpdateOptions) (*hmap.Surface, error) {
	switch format {
	case FormatPNG:
		img, err := texture.ReadImage(path)
		if err != nil {
			return nil, err
		}
		return texture.Import(img, width, height, opts.Flip), nil
	case FormatHex:
		return hextext.ReadFile(path, width)
	case FormatEDDS:
		cfg, err := texture.ReadEDDSConfig(path)
		if err != nil {
			return nil, err
		}
		if cfg.Width == 0 || cfg.Height == 0 {
			return nil, fmt.Errorf("%w: %q is %dx%d", texture.ErrEmptySurface, path, cfg.Width, cfg.Height)
		}
		s, err := texture.ReadEDDS(path, opts.Texture)
		if err != nil {
			return nil, err
		}
		if s.Width != width || s.Height != height {
			return texture.Import(texture.ToGray(s), width, height, opts.Flip), nil
		}
		if opts.Flip {
			s = texture.FlipVertical(s)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
