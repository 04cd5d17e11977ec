package hmap

import (
	"bytes"
	"fmt"
)

// Surface is a dense Height x Width grid of 8-bit heights stored row-major.
type Surface struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewSurface allocates a zeroed surface.
func NewSurface(width, height int) *Surface {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Surface{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// SurfaceFromBytes copies pix into a new surface of the given shape.
func SurfaceFromBytes(width, height int, pix []byte) (*Surface, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrShapeMismatch, len(pix), width, height)
	}
	s := NewSurface(width, height)
	copy(s.Pix, pix)
	return s, nil
}

// At returns the height at column x, row y.
func (s *Surface) At(x, y int) uint8 {
	return s.Pix[y*s.Width+x]
}

// Set stores v at column x, row y.
func (s *Surface) Set(x, y int, v uint8) {
	s.Pix[y*s.Width+x] = v
}

// Row returns row y as a subslice of Pix.
func (s *Surface) Row(y int) []uint8 {
	return s.Pix[y*s.Width : (y+1)*s.Width]
}

// Clone returns a deep copy.
func (s *Surface) Clone() *Surface {
	c := NewSurface(s.Width, s.Height)
	copy(c.Pix, s.Pix)
	return c
}

// Equal reports whether both surfaces have the same shape and heights.
func (s *Surface) Equal(o *Surface) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Width == o.Width && s.Height == o.Height && bytes.Equal(s.Pix, o.Pix)
}

// Range returns the smallest and largest height. An empty surface yields 0, 0.
func (s *Surface) Range() (lo, hi uint8) {
	if len(s.Pix) == 0 {
		return 0, 0
	}
	lo, hi = s.Pix[0], s.Pix[0]
	for _, v := range s.Pix[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// hasShape reports whether s is a well-formed width x height surface.
func (s *Surface) hasShape(width, height int) bool {
	return s != nil && s.Width == width && s.Height == height && len(s.Pix) == width*height
}
