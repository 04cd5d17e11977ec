package hextext

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/hmap"
)

func gradient(w, h int) *hmap.Surface {
	s := hmap.NewSurface(w, h)
	for i := range s.Pix {
		s.Pix[i] = uint8(i * 37) //nolint:gosec // wraps on purpose
	}
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w, h int
		opts Options
	}{
		{name: "stock-grid", w: DefaultWidth, h: DefaultHeight, opts: DefaultOptions()},
		{name: "no-indent", w: 16, h: 3, opts: Options{}},
		{name: "single-column", w: 1, h: 5, opts: DefaultOptions()},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := gradient(tc.w, tc.h)
			var buf bytes.Buffer
			if err := Encode(&buf, in, tc.opts); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			out, err := Decode(&buf, tc.w)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !out.Equal(in) {
				t.Fatalf("round-trip mismatch")
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	t.Parallel()

	s := hmap.NewSurface(3, 2)
	copy(s.Pix, []uint8{0x00, 0x0a, 0xff, 0x10, 0x7f, 0x80})

	var buf bytes.Buffer
	if err := Encode(&buf, s, DefaultOptions()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "  00 0A FF\n  10 7F 80\n"
	if buf.String() != want {
		t.Fatalf("Encode() = %q, want %q", buf.String(), want)
	}
}

func TestParseSeparatorsAndTruncation(t *testing.T) {
	t.Parallel()

	s, err := Parse("01,02;03:04\t05\r\n06  07,,;08 ff", 4)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Width != 4 || s.Height != 2 {
		t.Fatalf("shape = %dx%d, want 4x2", s.Width, s.Height)
	}
	if !bytes.Equal(s.Pix, []uint8{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("Pix = %v", s.Pix)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		width   int
		wantErr error
	}{
		{name: "zero-width", text: "00", width: 0, wantErr: ErrInvalidWidth},
		{name: "not-hex", text: "00 0G", width: 2, wantErr: ErrInvalidToken},
		{name: "too-wide", text: "100 00", width: 2, wantErr: ErrInvalidToken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tc.text, tc.width)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "min.txt")
	in := gradient(8, 8)
	if err := WriteFile(path, in, DefaultOptions()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := ReadFile(path, 8)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("file round-trip mismatch")
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"), 8); !errors.Is(err, ErrReadText) {
		t.Fatalf("expected ErrReadText, got %v", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	t.Parallel()

	s, err := Decode(strings.NewReader(" \n\n"), DefaultWidth)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Height != 0 || len(s.Pix) != 0 {
		t.Fatalf("expected empty surface, got %dx%d", s.Width, s.Height)
	}
}
