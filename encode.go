package hmap

import "fmt"

// Encode builds a new container from hm.Header, hm.Max and hm.Min.
//
// The header is written in hm.Header.Endianness and its magic, DataLength and
// (for the sparse layout) row descriptors are derived from the surfaces; the
// remaining header fields are written as given. hm.Rows is ignored. A sparse
// row covers the first through last column that is non-zero in either surface.
func Encode(hm *Heightmap) ([]byte, error) {
	h := hm.Header
	w, ht := int(h.Width), int(h.Height)
	if !hm.Max.hasShape(w, ht) {
		return nil, fmt.Errorf("%w: max: want %dx%d, got %s", ErrShapeMismatch, w, ht, describeShape(hm.Max))
	}
	if !hm.Min.hasShape(w, ht) {
		return nil, fmt.Errorf("%w: min: want %dx%d, got %s", ErrShapeMismatch, w, ht, describeShape(hm.Min))
	}

	var (
		rows []RowDescriptor
		blob []byte
		err  error
	)
	if h.IsCompressed() {
		rows, blob, err = packSparse(hm.Max, hm.Min)
		if err != nil {
			return nil, err
		}
	} else {
		blob = make([]byte, 0, 2*w*ht)
		blob = append(blob, hm.Max.Pix...)
		blob = append(blob, hm.Min.Pix...)
	}

	if h.DataLength, err = u32FromInt(len(blob)); err != nil {
		return nil, fmt.Errorf("%w: data length %d", err, len(blob))
	}

	out := make([]byte, 0, HeaderSize+len(rows)*RowDescriptorSize+len(blob))
	out = appendHeader(out, h)
	out = appendRowDescriptors(out, h.Endianness.byteOrder(), rows)
	out = append(out, blob...)

	return out, nil
}

// packSparse derives one descriptor per row and the mirrored max/min blob.
func packSparse(maxS, minS *Surface) ([]RowDescriptor, []byte, error) {
	rows := make([]RowDescriptor, maxS.Height)
	total := 0
	for y := range rows {
		first, last := nonZeroSpan(maxS.Row(y), minS.Row(y))
		if first > last {
			continue
		}

		start, err := u16FromInt(first)
		if err != nil {
			return nil, nil, err
		}
		count, err := u16FromInt(last - first + 1)
		if err != nil {
			return nil, nil, err
		}
		offset, err := i32FromInt(total - first)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: row %d offset", err, y)
		}

		rows[y] = RowDescriptor{Start: start, Count: count, Offset: offset}
		total += int(count)
	}

	blob := make([]byte, 2*total)
	p := NewSparseRowPacker(maxS.Width, len(blob))
	p.Walk(rows, func(x, y, o int) {
		blob[o] = maxS.At(x, y)
		blob[p.Mirror(o)] = minS.At(x, y)
	})

	return rows, blob, nil
}

// nonZeroSpan returns the first and last index that is non-zero in a or b.
// first > last when both rows are all zero.
func nonZeroSpan(a, b []uint8) (first, last int) {
	first, last = len(a), -1
	for x := range a {
		if a[x] != 0 || b[x] != 0 {
			first = min(first, x)
			last = x
		}
	}
	return first, last
}
