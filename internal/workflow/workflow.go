// Package workflow implements the file level operations behind hmaptool:
// inspecting containers, exporting a surface to an image, hex grid or texture,
// and writing an edited surface back into a container.
//
// Conditions the codec tolerates, such as a clamped blob or sparse cells that
// point outside it, are logged as warnings through the context logger.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/woozymasta/hmap"
	"github.com/woozymasta/hmap/internal/logging"
)

var (
	// ErrUnknownFormat indicates a file type that cannot be inferred or is not supported.
	ErrUnknownFormat = errors.New("unknown file format")
	// ErrInvalidOption indicates an option value out of range.
	ErrInvalidOption = errors.New("invalid option")
)

// Format is a side file type the workflow reads or writes.
type Format string

const (
	FormatPNG  Format = "png"
	FormatHex  Format = "hex"
	FormatEDDS Format = "edds"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatPNG, FormatHex, FormatEDDS:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath infers a Format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return FormatPNG, nil
	case ".txt", ".hex":
		return FormatHex, nil
	case ".edds", ".dds":
		return FormatEDDS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and decodes the container at path and logs the tolerated
// irregularities Decode reports.
func Load(ctx context.Context, path string) (*hmap.Heightmap, error) {
	hm, err := hmap.ReadFile(path)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("file", path).
		Stringer("endianness", hm.Header.Endianness).
		Bool("compressed", hm.Header.IsCompressed()).
		Int("width", hm.Width()).
		Int("height", hm.Height()).
		Msg("decoded heightmap")

	if hm.Clamped {
		log.Warn().
			Str("file", path).
			Uint32("data_length", hm.Header.DataLength).
			Int("available", hm.BlobLength).
			Msg("declared data length runs past end of file, clamped")
	}
	if hm.SkippedCells > 0 {
		log.Warn().
			Str("file", path).
			Int("cells", hm.SkippedCells).
			Msg("sparse cells point outside the data blob, left at zero")
	}

	return hm, nil
}
