package hmap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestAppendHeaderByteOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		end   Endianness
		order binary.ByteOrder
		magic string
	}{
		{name: "little", end: LittleEndian, order: binary.LittleEndian, magic: "PAMH"},
		{name: "big", end: BigEndian, order: binary.BigEndian, magic: "HMAP"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := testHeader(183, 249, tc.end, 1)
			h.DataLength = 0x01020304
			out := appendHeader(nil, h)
			out = appendRowDescriptors(out, tc.end.byteOrder(), []RowDescriptor{{Start: 5, Count: 3, Offset: -2}})

			if len(out) != HeaderSize+RowDescriptorSize {
				t.Fatalf("len = %d, want %d", len(out), HeaderSize+RowDescriptorSize)
			}
			if string(out[:4]) != tc.magic {
				t.Fatalf("magic = %q, want %q", out[:4], tc.magic)
			}
			if got := tc.order.Uint16(out[12:14]); got != 183 {
				t.Fatalf("width = %d", got)
			}
			if got := math.Float32frombits(tc.order.Uint32(out[28:32])); got != 4500 {
				t.Fatalf("bbox_max[0] = %v", got)
			}
			if got := tc.order.Uint32(out[40:44]); got != 0x01020304 {
				t.Fatalf("data_length = %#x", got)
			}
			d := out[HeaderSize:]
			off := int32(tc.order.Uint32(d[4:8])) //nolint:gosec // two's complement field
			if tc.order.Uint16(d[0:2]) != 5 || tc.order.Uint16(d[2:4]) != 3 || off != -2 {
				t.Fatalf("descriptor bytes = % x", d)
			}
		})
	}
}

func TestDecodeSparseRowPastBlobEnd(t *testing.T) {
	t.Parallel()

	// width 20, half 50: offset 100 puts every covered cell past the blob
	h := testHeader(20, 1, LittleEndian, 1)
	h.DataLength = 100
	blob := make([]byte, 100)
	data := buildContainer(h, []RowDescriptor{{Start: 5, Count: 3, Offset: 100}}, blob)

	hm, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if hm.SkippedCells != 3 {
		t.Fatalf("SkippedCells = %d, want 3", hm.SkippedCells)
	}
	if lo, hi := hm.Max.Range(); lo != 0 || hi != 0 {
		t.Fatalf("max range = %d..%d, want all zero", lo, hi)
	}
}

func TestDecodeSparseOddBlobMirror(t *testing.T) {
	t.Parallel()

	// blob of 7 bytes: half is 3, the trailing byte is never addressed
	h := testHeader(3, 1, BigEndian, 1)
	h.DataLength = 7
	data := buildContainer(h, []RowDescriptor{{Start: 0, Count: 3, Offset: 0}}, []byte{1, 2, 3, 4, 5, 6, 7})

	hm, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(hm.Max.Pix, []byte{1, 2, 3}) || !bytes.Equal(hm.Min.Pix, []byte{4, 5, 6}) {
		t.Fatalf("max = %v, min = %v", hm.Max.Pix, hm.Min.Pix)
	}
	if hm.SkippedCells != 0 {
		t.Fatalf("SkippedCells = %d", hm.SkippedCells)
	}
}

func TestDecodeShortHeaderField(t *testing.T) {
	t.Parallel()

	full := appendHeader(nil, testHeader(4, 2, LittleEndian, 0))
	for n := MinSize; n < HeaderSize; n++ {
		want := "bbox_max"
		if n >= 40 {
			want = "data_length"
		}

		_, err := Decode(full[:n])
		var te *TruncatedError
		if !errors.As(err, &te) {
			t.Fatalf("%d bytes: expected *TruncatedError, got %v", n, err)
		}
		if te.Field != want {
			t.Fatalf("%d bytes: field = %q, want %q", n, te.Field, want)
		}
	}
}

func TestUpdateMinWithMaxOnlyBlob(t *testing.T) {
	t.Parallel()

	h := testHeader(4, 2, LittleEndian, 0)
	h.DataLength = 8
	data := buildContainer(h, nil, bytes.Repeat([]byte{0x33}, 8))

	out, err := Update(data, filled(4, 2, 0x77), Min)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("min update into a max-only blob changed the output")
	}
}
