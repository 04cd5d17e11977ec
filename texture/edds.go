package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/woozymasta/bcn"

	"github.com/woozymasta/hmap"
)

// WriteOptions configures EDDS export.
type WriteOptions struct {
	// EncodeOptions are passed to the BCn encoder.
	EncodeOptions *bcn.EncodeOptions
	// Format is the pixel format; FormatUnknown selects BGRA8.
	Format bcn.Format
	// MaxMipMaps limits the mip chain, 0 writes the full chain.
	MaxMipMaps int
	// Compress stores mip levels as LZ4 chunk streams where it pays off.
	Compress bool
}

// DefaultWriteOptions returns lossless BGRA8 with a full LZ4 compressed chain.
func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{Format: bcn.FormatBGRA8, Compress: true}
}

// ReadOptions configures EDDS import.
type ReadOptions struct {
	// DecodeOptions are passed to the BCn decoder.
	DecodeOptions *bcn.DecodeOptions
}

// WriteEDDS writes s as a grayscale EDDS texture.
func WriteEDDS(path string, s *hmap.Surface, opts *WriteOptions) error {
	if opts == nil {
		opts = DefaultWriteOptions()
	}
	if s == nil || s.Width == 0 || s.Height == 0 {
		return ErrEmptySurface
	}
	format := opts.Format
	if format == bcn.FormatUnknown {
		format = bcn.FormatBGRA8
	}

	count := mipLevelCount(s.Width, s.Height)
	if opts.MaxMipMaps > 0 {
		count = min(count, opts.MaxMipMaps)
	}
	mips := bcn.GenerateMipmaps(toNRGBA(s), false)
	if len(mips) > count {
		mips = mips[:count]
	}

	blocks := make([]*block, len(mips))
	for i, mip := range mips {
		data, _, _, err := bcn.EncodeImageWithOptions(mip, format, opts.EncodeOptions)
		if err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrEncodeImage, i, err)
		}
		want := expectedDataLength(format, mipDimension(s.Width, i), mipDimension(s.Height, i))
		if want < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidFormat, format)
		}
		if len(data) != want {
			return fmt.Errorf("%w: mipmap %d: expected %d, got %d", ErrMipmapSizeMismatch, i, want, len(data))
		}
		if blocks[i], err = packBlock(data, opts.Compress); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrLZ4Compress, i, err)
		}
	}

	w32, err := u32FromInt(s.Width)
	if err != nil {
		return err
	}
	h32, err := u32FromInt(s.Height)
	if err != nil {
		return err
	}
	header, err := makeDDSHeader(w32, h32, uint32(len(blocks)), format) // #nosec G115 -- at most maxMipLevels
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	bw := bufio.NewWriter(f)
	if err := writeEDDS(bw, header, blocks); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %q: %v", ErrWriteBlock, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	return nil
}

func writeEDDS(w io.Writer, header *bcn.DDSHeader, blocks []*block) error {
	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: magic: %v", ErrDDSHeader, err)
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return fmt.Errorf("%w: %v", ErrDDSHeader, err)
	}
	return writeBlocks(w, blocks)
}

// ReadEDDSConfig returns the texture size without decoding any mip level.
func ReadEDDSConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	header, _, err := readHeaders(f)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      int(header.Width),
		Height:     int(header.Height),
		ColorModel: color.GrayModel,
	}, nil
}

// ReadEDDS decodes the largest mip level of an EDDS texture and returns its
// red channel as a surface.
func ReadEDDS(path string, opts *ReadOptions) (*hmap.Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	r := bufio.NewReader(f)
	header, dx10, err := readHeaders(r)
	if err != nil {
		return nil, err
	}

	format := detectFormat(header, dx10)
	width, height := int(header.Width), int(header.Height)
	want := expectedDataLength(format, width, height)
	if want <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}

	count := 1
	if header.Caps&bcn.DDSCapsMipmap != 0 && header.MipMapCount > 0 {
		count = int(header.MipMapCount)
	}
	if count > 32 {
		return nil, fmt.Errorf("%w: %d mip levels", ErrBlockTable, count)
	}

	data, err := readLargestMip(r, count, want)
	if err != nil {
		return nil, err
	}

	var decOpts *bcn.DecodeOptions
	if opts != nil {
		decOpts = opts.DecodeOptions
	}
	img, err := bcn.DecodeImageWithOptions(data, width, height, format, decOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}
	return redChannel(img), nil
}

// readLargestMip skips every body but the last one, which holds mip 0.
func readLargestMip(r io.Reader, count, want int) ([]byte, error) {
	table, err := readBlockTable(r, count)
	if err != nil {
		return nil, err
	}

	last := len(table) - 1
	for i, e := range table[:last] {
		if _, err := io.CopyN(io.Discard, r, int64(e.size)); err != nil {
			return nil, fmt.Errorf("%w: skip mipmap %d: %v", ErrBlockBody, count-1-i, err)
		}
	}

	b, err := readBlockBody(r, table[last])
	if err != nil {
		return nil, err
	}
	return unpackBlock(b, want)
}

func readHeaders(r io.Reader) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSHeader, err)
	}
	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: DX10: %v", ErrDDSHeader, err)
	}
	return header, dx10, nil
}
