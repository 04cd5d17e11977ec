package texture

import (
	"path/filepath"
	"testing"

	"github.com/woozymasta/bcn"
)

// benchSurfacePath prepares an EDDS texture for read benchmarks.
func benchSurfacePath(b *testing.B, opts *WriteOptions) string {
	b.Helper()

	path := filepath.Join(b.TempDir(), "bench_input.edds")
	if err := WriteEDDS(path, gradientSurface(1024, 1024), opts); err != nil {
		b.Fatalf("prepare input file: %v", err)
	}
	return path
}

func BenchmarkWriteEDDS(b *testing.B) {
	s := gradientSurface(1024, 1024)
	path := filepath.Join(b.TempDir(), "bench_write.edds")

	for _, tc := range []struct {
		name string
		opts *WriteOptions
	}{
		{name: "BGRA8-COPY", opts: &WriteOptions{Format: bcn.FormatBGRA8}},
		{name: "BGRA8-LZ4", opts: &WriteOptions{Format: bcn.FormatBGRA8, Compress: true}},
		{name: "BC4-LZ4", opts: &WriteOptions{
			Format:        bcn.FormatBC4,
			Compress:      true,
			EncodeOptions: &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast},
		}},
	} {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(s.Pix)))
			b.ResetTimer()

			for b.Loop() {
				if err := WriteEDDS(path, s, tc.opts); err != nil {
					b.Fatalf("write: %v", err)
				}
			}
		})
	}
}

func BenchmarkReadEDDS(b *testing.B) {
	path := benchSurfacePath(b, DefaultWriteOptions())

	b.ReportAllocs()
	b.SetBytes(1024 * 1024)
	b.ResetTimer()

	for b.Loop() {
		if _, err := ReadEDDS(path, nil); err != nil {
			b.Fatalf("read: %v", err)
		}
	}
}

func BenchmarkPackBlock(b *testing.B) {
	data := make([]byte, 1024*1024*4)
	for i := range data {
		data[i] = byte((i*7 + i/4096) & 0xff) //nolint:gosec // bounded by mask
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for b.Loop() {
		if _, err := packBlock(data, true); err != nil {
			b.Fatalf("pack: %v", err)
		}
	}
}
