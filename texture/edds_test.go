package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/woozymasta/bcn"

	"github.com/woozymasta/hmap"
)

func gradientSurface(width, height int) *hmap.Surface {
	s := hmap.NewSurface(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s.Set(x, y, uint8((x*5+y*3)&0xff)) //nolint:gosec // bounded by mask
		}
	}
	return s
}

func TestPackBlockRoundTrip(t *testing.T) {
	data := make([]byte, 128*1024)
	for i := range data {
		data[i] = byte((i*31 + 7) & 0xff)
	}

	b, err := packBlock(data, true)
	if err != nil {
		t.Fatalf("packBlock: %v", err)
	}
	if b.magic != BlockMagicLZ4 {
		t.Fatalf("magic = %q, want %q", b.magic, BlockMagicLZ4)
	}

	out, err := unpackBlock(b, len(data))
	if err != nil {
		t.Fatalf("unpackBlock: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("round-trip mismatch")
	}
}

func TestPackBlockFallsBackToCOPY(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	noise := make([]byte, 8*1024)
	for i := range noise {
		noise[i] = byte(rng.Uint32())
	}

	tests := []struct {
		name     string
		data     []byte
		compress bool
	}{
		{name: "disabled", data: bytes.Repeat([]byte{1}, 4096), compress: false},
		{name: "small", data: bytes.Repeat([]byte{1}, 100), compress: true},
		{name: "incompressible", data: noise, compress: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, err := packBlock(tc.data, tc.compress)
			if err != nil {
				t.Fatalf("packBlock: %v", err)
			}
			if b.magic != BlockMagicCOPY {
				t.Fatalf("magic = %q, want %q", b.magic, BlockMagicCOPY)
			}
			if b.size() != len(tc.data) {
				t.Fatalf("size = %d, want %d", b.size(), len(tc.data))
			}
		})
	}
}

func TestUnpackBlockErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		block   *block
		want    int
		wantErr error
	}{
		{name: "copy-size", block: &block{magic: BlockMagicCOPY, data: make([]byte, 3)}, want: 4, wantErr: ErrDecodedSizeMismatch},
		{name: "lz4-raw-size", block: &block{magic: BlockMagicLZ4, rawSize: 8}, want: 4, wantErr: ErrDecodedSizeMismatch},
		{name: "lz4-empty", block: &block{magic: BlockMagicLZ4, rawSize: 4}, want: 4, wantErr: ErrChunkStreamTruncated},
		{name: "lz4-flags", block: &block{magic: BlockMagicLZ4, rawSize: 4, data: []byte{1, 0, 0, 0x01, 0}}, want: 4, wantErr: ErrUnknownLZ4Flags},
		{name: "lz4-short-chunk", block: &block{magic: BlockMagicLZ4, rawSize: 4, data: []byte{9, 0, 0, 0x80, 0}}, want: 4, wantErr: ErrChunkStreamTruncated},
		{name: "magic", block: &block{magic: "ZSTD"}, want: 0, wantErr: ErrUnknownBlockMagic},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := unpackBlock(tc.block, tc.want)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWriteReadEDDS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *WriteOptions
	}{
		{name: "default", opts: nil},
		{name: "copy", opts: &WriteOptions{Format: bcn.FormatBGRA8, Compress: false}},
		{name: "rgba8-single-mip", opts: &WriteOptions{Format: bcn.FormatRGBA8, MaxMipMaps: 1, Compress: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := gradientSurface(64, 48)
			path := filepath.Join(t.TempDir(), "surface.edds")
			if err := WriteEDDS(path, s, tc.opts); err != nil {
				t.Fatalf("WriteEDDS: %v", err)
			}

			got, err := ReadEDDS(path, nil)
			if err != nil {
				t.Fatalf("ReadEDDS: %v", err)
			}
			if !got.Equal(s) {
				t.Fatalf("surface mismatch")
			}

			cfg, err := ReadEDDSConfig(path)
			if err != nil {
				t.Fatalf("ReadEDDSConfig: %v", err)
			}
			if cfg.Width != 64 || cfg.Height != 48 {
				t.Fatalf("unexpected size: %dx%d", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestWriteEDDSBlockCompressed(t *testing.T) {
	t.Parallel()

	s := gradientSurface(16, 16)
	path := filepath.Join(t.TempDir(), "bc4.edds")
	err := WriteEDDS(path, s, &WriteOptions{
		Format:        bcn.FormatBC4,
		Compress:      true,
		EncodeOptions: &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast},
	})
	if err != nil {
		t.Fatalf("WriteEDDS: %v", err)
	}

	got, err := ReadEDDS(path, nil)
	if err != nil {
		t.Fatalf("ReadEDDS: %v", err)
	}
	if got.Width != 16 || got.Height != 16 {
		t.Fatalf("unexpected size: %dx%d", got.Width, got.Height)
	}
}

func TestWriteEDDSErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.edds")
	if err := WriteEDDS(path, hmap.NewSurface(0, 0), nil); !errors.Is(err, ErrEmptySurface) {
		t.Fatalf("expected ErrEmptySurface, got %v", err)
	}
	if _, err := ReadEDDS(filepath.Join(t.TempDir(), "missing.edds"), nil); !errors.Is(err, ErrOpenFile) {
		t.Fatalf("expected ErrOpenFile, got %v", err)
	}
}

func TestDetectFormatTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header *bcn.DDSHeader
		dx10   *bcn.DDSHeaderDX10
		want   bcn.Format
	}{
		{
			name: "fourcc-ati1",
			header: &bcn.DDSHeader{
				PixelFormat: bcn.DDSPixelFormat{Flags: bcn.DDSPFFourCC, FourCC: fourCC("ATI1")},
			},
			want: bcn.FormatBC4,
		},
		{
			name: "fourcc-dxt4",
			header: &bcn.DDSHeader{
				PixelFormat: bcn.DDSPixelFormat{Flags: bcn.DDSPFFourCC, FourCC: fourCC("DXT4")},
			},
			want: bcn.FormatDXT5,
		},
		{
			name: "rgb-rgba8",
			header: &bcn.DDSHeader{
				PixelFormat: bcn.DDSPixelFormat{
					Flags:       bcn.DDSPFRGB | bcn.DDSPFAlphaPixels,
					RGBBitCount: 32,
					RBitMask:    0x000000ff,
					GBitMask:    0x0000ff00,
					BBitMask:    0x00ff0000,
					ABitMask:    0xff000000,
				},
			},
			want: bcn.FormatRGBA8,
		},
		{name: "dxgi-bgra8", dx10: &bcn.DDSHeaderDX10{DXGIFormat: 87}, want: bcn.FormatBGRA8},
		{name: "dxgi-unknown", dx10: &bcn.DDSHeaderDX10{DXGIFormat: 2}, want: bcn.FormatUnknown},
		{
			name: "rgb-24bit",
			header: &bcn.DDSHeader{
				PixelFormat: bcn.DDSPixelFormat{Flags: bcn.DDSPFRGB, RGBBitCount: 24},
			},
			want: bcn.FormatUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := detectFormat(tc.header, tc.dx10); got != tc.want {
				t.Fatalf("detectFormat() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMakeDDSHeaderDetectsBack(t *testing.T) {
	t.Parallel()

	for _, f := range []bcn.Format{bcn.FormatDXT1, bcn.FormatDXT5, bcn.FormatBC4, bcn.FormatBC5, bcn.FormatRGBA8, bcn.FormatBGRA8} {
		hdr, err := makeDDSHeader(8, 8, 4, f)
		if err != nil {
			t.Fatalf("makeDDSHeader(%v): %v", f, err)
		}
		if got := detectFormat(hdr, nil); got != f {
			t.Fatalf("detectFormat(makeDDSHeader(%v)) = %v", f, got)
		}
		if hdr.Reserved1[1] != enf1Marker {
			t.Fatalf("missing ENF1 marker for %v", f)
		}
	}

	if _, err := makeDDSHeader(8, 8, 1, bcn.FormatUnknown); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestExpectedDataLengthTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format bcn.Format
		w      int
		h      int
		want   int
	}{
		{name: "bc4-4x4", format: bcn.FormatBC4, w: 4, h: 4, want: 8},
		{name: "dxt1-5x7", format: bcn.FormatDXT1, w: 5, h: 7, want: 32},
		{name: "bc5-4x4", format: bcn.FormatBC5, w: 4, h: 4, want: 16},
		{name: "bgra8-183x249", format: bcn.FormatBGRA8, w: 183, h: 249, want: 183 * 249 * 4},
		{name: "unknown", format: bcn.FormatUnknown, w: 4, h: 4, want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := expectedDataLength(tc.format, tc.w, tc.h); got != tc.want {
				t.Fatalf("expectedDataLength(%v,%d,%d) = %d, want %d", tc.format, tc.w, tc.h, got, tc.want)
			}
		})
	}
}

func TestMipLevelCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		w, h, want int
	}{
		{w: 1, h: 1, want: 1},
		{w: 2, h: 1, want: 2},
		{w: 183, h: 249, want: 8},
		{w: 4096, h: 4096, want: 11},
	}
	for _, tc := range tests {
		if got := mipLevelCount(tc.w, tc.h); got != tc.want {
			t.Fatalf("mipLevelCount(%d,%d) = %d, want %d", tc.w, tc.h, got, tc.want)
		}
	}
	if got := mipDimension(183, 3); got != 22 {
		t.Fatalf("mipDimension(183,3) = %d, want 22", got)
	}
}

func TestReadBlockTableErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown-magic", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _ = buf.WriteString("ABCD")
		_ = binary.Write(&buf, binary.LittleEndian, int32(8))

		_, err := readBlockTable(bytes.NewReader(buf.Bytes()), 1)
		if !errors.Is(err, ErrUnknownBlockMagic) {
			t.Fatalf("expected ErrUnknownBlockMagic, got %v", err)
		}
	})

	t.Run("negative-size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _ = buf.WriteString(BlockMagicCOPY)
		_ = binary.Write(&buf, binary.LittleEndian, int32(-1))

		_, err := readBlockTable(bytes.NewReader(buf.Bytes()), 1)
		if !errors.Is(err, ErrBlockTable) {
			t.Fatalf("expected ErrBlockTable, got %v", err)
		}
	})

	t.Run("short", func(t *testing.T) {
		t.Parallel()

		_, err := readBlockTable(bytes.NewReader([]byte("COPY")), 1)
		if !errors.Is(err, ErrBlockTable) {
			t.Fatalf("expected ErrBlockTable, got %v", err)
		}
	})
}

func TestWriteBlocksOrder(t *testing.T) {
	t.Parallel()

	large, err := packBlock(bytes.Repeat([]byte{7}, 4096), true)
	if err != nil {
		t.Fatalf("packBlock: %v", err)
	}
	small := &block{magic: BlockMagicCOPY, data: []byte{1, 2, 3, 4}, rawSize: 4}

	var buf bytes.Buffer
	if err := writeBlocks(&buf, []*block{large, small}); err != nil {
		t.Fatalf("writeBlocks: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	table, err := readBlockTable(r, 2)
	if err != nil {
		t.Fatalf("readBlockTable: %v", err)
	}
	if table[0].magic != BlockMagicCOPY || table[1].magic != BlockMagicLZ4 {
		t.Fatalf("table order = %q, %q", table[0].magic, table[1].magic)
	}

	first, err := readBlockBody(r, table[0])
	if err != nil {
		t.Fatalf("readBlockBody: %v", err)
	}
	if !bytes.Equal(first.data, small.data) {
		t.Fatalf("smallest mip body = %v", first.data)
	}

	second, err := readBlockBody(r, table[1])
	if err != nil {
		t.Fatalf("readBlockBody: %v", err)
	}
	out, err := unpackBlock(second, 4096)
	if err != nil {
		t.Fatalf("unpackBlock: %v", err)
	}
	if !bytes.Equal(out, bytes.Repeat([]byte{7}, 4096)) {
		t.Fatalf("largest mip mismatch")
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]bcn.Format{
		"":      bcn.FormatBGRA8,
		"bgra8": bcn.FormatBGRA8,
		"BC4":   bcn.FormatBC4,
		"dxt5":  bcn.FormatDXT5,
	}
	for name, want := range tests {
		got, ok := ParseFormat(name)
		if !ok || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseFormat("png"); ok {
		t.Fatalf("ParseFormat(png) accepted")
	}
}
