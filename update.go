package hmap

import (
	"fmt"
	"strings"
)

// Selector picks one of the two surfaces of a container.
type Selector uint8

const (
	// Max selects the upper height surface.
	Max Selector = iota + 1
	// Min selects the lower height surface.
	Min
)

func (s Selector) String() string {
	switch s {
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return fmt.Sprintf("Selector(%d)", uint8(s))
	}
}

// ParseSelector parses "max" or "min" (case insensitive).
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max":
		return Max, nil
	case "min":
		return Min, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}
}

// Update returns a copy of data with the surface selected by which replaced.
//
// The layout is re-derived from data; the header and descriptor table are never
// rewritten and the result always has len(data) bytes. replacement must have
// exactly the container's width and height. Sparse cells outside the blob are
// skipped, and raw writes are clipped to the effective blob.
func Update(data []byte, replacement *Surface, which Selector) ([]byte, error) {
	if which != Max && which != Min {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelector, which)
	}

	l, err := parseLayout(data)
	if err != nil {
		return nil, err
	}

	w, h := int(l.header.Width), int(l.header.Height)
	if !replacement.hasShape(w, h) {
		return nil, fmt.Errorf("%w: want %dx%d, got %s", ErrShapeMismatch, w, h, describeShape(replacement))
	}

	out := make([]byte, len(data))
	copy(out, data)
	blob := l.blob(out)

	if l.header.IsCompressed() {
		p := NewSparseRowPacker(w, len(blob))
		p.Walk(l.rows, func(x, y, o int) {
			if which == Min {
				o = p.Mirror(o)
			}
			blob[o] = replacement.At(x, y)
		})
		return out, nil
	}

	flat := w * h
	switch which {
	case Max:
		copy(blob, replacement.Pix)
	case Min:
		if len(blob) > flat {
			copy(blob[flat:], replacement.Pix)
		}
	}

	return out, nil
}

func describeShape(s *Surface) string {
	if s == nil {
		return "nil surface"
	}
	if len(s.Pix) != s.Width*s.Height {
		return fmt.Sprintf("%dx%d with %d bytes", s.Width, s.Height, len(s.Pix))
	}
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
