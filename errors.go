package hmap

import (
	"errors"
	"fmt"
)

var (
	// ErrTooSmall indicates the buffer cannot hold the minimal header.
	ErrTooSmall = errors.New("HMAP buffer too small")
	// ErrBadMagic indicates the leading bytes are not "HMAP" in either byte order.
	ErrBadMagic = errors.New("bad HMAP magic")
	// ErrTruncated indicates a header field or the descriptor table runs past the buffer end.
	ErrTruncated = errors.New("HMAP truncated")
	// ErrShapeMismatch indicates a surface does not match the container grid.
	ErrShapeMismatch = errors.New("surface shape mismatch")
	// ErrUnsupportedFormat indicates a file that is not an HMAP container.
	ErrUnsupportedFormat = errors.New("unsupported format: expected HMAP container")
	// ErrInvalidSelector indicates an unknown surface selector.
	ErrInvalidSelector = errors.New("invalid surface selector")
	// ErrSizeOverflow indicates a size or dimension exceeds format limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrOpenFile indicates reading the HMAP file failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrWriteFile indicates writing the HMAP file failed.
	ErrWriteFile = errors.New("write file failed")
)

// TruncatedError reports which structural field ran past the end of the buffer.
// It matches ErrTruncated with errors.Is.
type TruncatedError struct {
	Field string
	Need  int
	Have  int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%v: %s needs %d bytes, %d remain", ErrTruncated, e.Field, e.Need, e.Have)
}

// Unwrap returns ErrTruncated.
func (e *TruncatedError) Unwrap() error {
	return ErrTruncated
}
