// Package hextext reads and writes the legacy plain-text height grid: one row
// per line of two-digit hexadecimal bytes.
//
// Decoding accepts any run of whitespace, commas, semicolons or colons as a
// separator and reshapes the byte stream to a fixed row width, dropping a
// trailing partial row. There is no header; the width is supplied by the caller.
package hextext

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/hmap"
)

const (
	// DefaultWidth is the row width of the stock GTA V heightmap grid.
	DefaultWidth = 183
	// DefaultHeight is the row count of the stock GTA V heightmap grid.
	DefaultHeight = 249

	indent = "  "
)

var (
	// ErrInvalidWidth indicates a non-positive row width.
	ErrInvalidWidth = errors.New("invalid row width")
	// ErrInvalidToken indicates a token that is not a hexadecimal byte.
	ErrInvalidToken = errors.New("non-hex token")
	// ErrReadText indicates reading the hex text failed.
	ErrReadText = errors.New("read hex text failed")
	// ErrWriteText indicates writing the hex text failed.
	ErrWriteText = errors.New("write hex text failed")
)

// Options configures Encode.
type Options struct {
	// Indent prefixes every line with two spaces.
	Indent bool
}

// DefaultOptions matches the layout the legacy tooling writes.
func DefaultOptions() Options {
	return Options{Indent: true}
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',', ';', ':':
		return true
	default:
		return false
	}
}

// Parse decodes hex text into a surface with rows of width bytes.
func Parse(text string, width int) (*hmap.Surface, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}

	tokens := strings.FieldsFunc(text, isSeparator)
	height := len(tokens) / width
	s := hmap.NewSurface(width, height)
	for i, tok := range tokens[:height*width] {
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q", ErrInvalidToken, i, tok)
		}
		s.Pix[i] = uint8(v)
	}

	return s, nil
}

// Decode reads all of r and parses it with Parse.
func Decode(r io.Reader, width int) (*hmap.Surface, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadText, err)
	}
	return Parse(string(raw), width)
}

// Encode writes s as uppercase two-digit hex, one row per line.
func Encode(w io.Writer, s *hmap.Surface, opts Options) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, len(indent)+s.Width*3)
	for y := 0; y < s.Height; y++ {
		line = line[:0]
		if opts.Indent {
			line = append(line, indent...)
		}
		for x, v := range s.Row(y) {
			if x > 0 {
				line = append(line, ' ')
			}
			line = appendHexByte(line, v)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrWriteText, y, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteText, err)
	}
	return nil
}

func appendHexByte(dst []byte, v uint8) []byte {
	const digits = "0123456789ABCDEF"
	return append(dst, digits[v>>4], digits[v&0x0f])
}

// ReadFile decodes the hex text file at path.
func ReadFile(path string, width int) (*hmap.Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrReadText, path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, width)
}

// WriteFile encodes s to the file at path.
func WriteFile(path string, s *hmap.Surface, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteText, path, err)
	}

	if err := Encode(f, s, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteText, path, err)
	}
	return nil
}
