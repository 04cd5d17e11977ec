package hmap

// Heightmap is a decoded HMAP container.
type Heightmap struct {
	Header Header
	// Rows holds one descriptor per row for the sparse layout, nil otherwise.
	Rows []RowDescriptor
	Max  *Surface
	Min  *Surface

	// BlobOffset is where the data blob starts in the source buffer.
	BlobOffset int
	// BlobLength is the effective blob length after clamping.
	BlobLength int
	// Clamped is set when DataLength ran past the end of the buffer.
	Clamped bool
	// SkippedCells counts sparse cells whose offsets fell outside the blob.
	SkippedCells int
}

// Width returns the grid width in columns.
func (hm *Heightmap) Width() int {
	return int(hm.Header.Width)
}

// Height returns the grid height in rows.
func (hm *Heightmap) Height() int {
	return int(hm.Header.Height)
}

// Surface returns the surface named by which, or nil for an invalid selector.
func (hm *Heightmap) Surface(which Selector) *Surface {
	switch which {
	case Max:
		return hm.Max
	case Min:
		return hm.Min
	default:
		return nil
	}
}

// Decode parses an HMAP buffer into its header and both surfaces.
//
// Structural problems fail with ErrTooSmall, ErrBadMagic or a *TruncatedError.
// A declared data length past the end of the buffer is clamped, and sparse
// cells pointing outside the blob stay zero; both are reported on the result.
// The returned surfaces never alias data.
func Decode(data []byte) (*Heightmap, error) {
	l, err := parseLayout(data)
	if err != nil {
		return nil, err
	}

	w, h := int(l.header.Width), int(l.header.Height)
	hm := &Heightmap{
		Header:     l.header,
		Rows:       l.rows,
		Max:        NewSurface(w, h),
		Min:        NewSurface(w, h),
		BlobOffset: l.blobOffset,
		BlobLength: l.blobLength,
		Clamped:    l.clamped,
	}

	blob := l.blob(data)
	if l.header.IsCompressed() {
		p := NewSparseRowPacker(w, len(blob))
		hm.SkippedCells = p.Walk(l.rows, func(x, y, o int) {
			hm.Max.Set(x, y, blob[o])
			hm.Min.Set(x, y, blob[p.Mirror(o)])
		})
		return hm, nil
	}

	flat := w * h
	if len(blob) >= flat {
		copy(hm.Max.Pix, blob[:flat])
	}
	if len(blob) >= 2*flat {
		copy(hm.Min.Pix, blob[flat:2*flat])
	}

	return hm, nil
}
