package hmap

// SparseRowPacker maps (row descriptor, column) to a blob offset for the
// sparse layout. The max value of a cell lives at the returned offset and the
// min value at offset+Half. Decode, Update and Encode all go through OffsetFor
// so that the in-range rule is the same on every path.
type SparseRowPacker struct {
	width   int
	blobLen int
	half    int
}

// NewSparseRowPacker returns a packer for rows of the given width over a blob
// of blobLen bytes.
func NewSparseRowPacker(width, blobLen int) SparseRowPacker {
	return SparseRowPacker{width: width, blobLen: blobLen, half: blobLen / 2}
}

// Half returns the distance between a max value and its mirrored min value.
func (p SparseRowPacker) Half() int {
	return p.half
}

// OffsetFor returns Offset+column when column is inside the descriptor run and
// the grid, and both the offset and its mirror lie in [0, blobLen).
func (p SparseRowPacker) OffsetFor(d RowDescriptor, column int) (int, bool) {
	start := int(d.Start)
	if column < start || column >= start+int(d.Count) || column >= p.width {
		return 0, false
	}

	o := int(d.Offset) + column
	if o < 0 || o >= p.blobLen || o+p.half >= p.blobLen {
		return 0, false
	}
	return o, true
}

// Mirror returns the min-surface offset paired with max-surface offset o.
func (p SparseRowPacker) Mirror(o int) int {
	return o + p.half
}

// Walk calls fn for every in-range cell covered by rows, row y being rows[y].
// It returns the number of covered cells that were skipped as out of range.
func (p SparseRowPacker) Walk(rows []RowDescriptor, fn func(x, y, o int)) (skipped int) {
	for y, d := range rows {
		start := int(d.Start)
		for i := 0; i < int(d.Count); i++ {
			x := start + i
			o, ok := p.OffsetFor(d, x)
			if !ok {
				skipped++
				continue
			}
			fn(x, y, o)
		}
	}
	return skipped
}
