package hmap

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// MinSize is the smallest buffer Decode accepts.
	MinSize = 32
	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 44
	// RowDescriptorSize is the size of one sparse row descriptor in bytes.
	RowDescriptorSize = 8

	// magicLE is "HMAP" as stored by a little-endian writer (bytes "PAMH").
	magicLE uint32 = 0x484D4150
)

// Endianness is the byte order of every multi-byte header and descriptor field.
type Endianness uint8

const (
	// LittleEndian files start with the bytes "PAMH".
	LittleEndian Endianness = iota
	// BigEndian files start with the bytes "HMAP".
	BigEndian
)

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	default:
		return fmt.Sprintf("Endianness(%d)", uint8(e))
	}
}

// byteOrder reads, puts and appends multi-byte fields in one order.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (e Endianness) byteOrder() byteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// magic returns the four leading bytes a file of this byte order carries.
func (e Endianness) magic() [4]byte {
	var m [4]byte
	e.byteOrder().PutUint32(m[:], magicLE)
	return m
}

// detectEndianness validates the magic and infers the byte order from it.
func detectEndianness(magic [4]byte) (Endianness, error) {
	switch string(magic[:]) {
	case "HMAP", "PAMH":
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadMagic, magic[:])
	}

	if binary.LittleEndian.Uint32(magic[:]) == magicLE {
		return LittleEndian, nil
	}
	return BigEndian, nil
}

// Sniff reports whether data starts with an HMAP magic in either byte order.
func Sniff(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	_, err := detectEndianness([4]byte(data[:4]))
	return err == nil
}

// Header is the fixed HMAP header.
type Header struct {
	Magic        [4]byte
	VersionMajor uint8
	VersionMinor uint8
	// Padding is opaque and only kept for round trips.
	Padding    [2]byte
	Compressed uint32
	Width      uint16
	Height     uint16
	BBoxMin    [3]float32
	BBoxMax    [3]float32
	DataLength uint32
	Endianness Endianness
}

// IsCompressed reports whether the sparse row layout is used.
func (h Header) IsCompressed() bool {
	return h.Compressed != 0
}

// Cells returns Width*Height.
func (h Header) Cells() int {
	return int(h.Width) * int(h.Height)
}

// RowDescriptor locates the explicit run of one row in the sparse layout.
// Columns outside [Start, Start+Count) are implicitly zero.
type RowDescriptor struct {
	Start  uint16
	Count  uint16
	Offset int32
}

// layout is everything the header and descriptor table say about a buffer.
type layout struct {
	header     Header
	rows       []RowDescriptor
	blobOffset int
	blobLength int
	clamped    bool
}

func (l *layout) blob(data []byte) []byte {
	return data[l.blobOffset : l.blobOffset+l.blobLength]
}

// parseLayout reads the header, the descriptor table and the blob bounds.
func parseLayout(data []byte) (*layout, error) {
	if len(data) < MinSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTooSmall, len(data), MinSize)
	}

	magic := [4]byte(data[:4])
	end, err := detectEndianness(magic)
	if err != nil {
		return nil, err
	}

	h := Header{Magic: magic, Endianness: end}
	c := &cursor{buf: data, off: 4, order: end.byteOrder()}

	if h.VersionMajor, err = c.u8("version_major"); err != nil {
		return nil, err
	}
	if h.VersionMinor, err = c.u8("version_minor"); err != nil {
		return nil, err
	}
	pad, err := c.take(2, "padding")
	if err != nil {
		return nil, err
	}
	copy(h.Padding[:], pad)
	if h.Compressed, err = c.u32("compressed"); err != nil {
		return nil, err
	}
	if h.Width, err = c.u16("width"); err != nil {
		return nil, err
	}
	if h.Height, err = c.u16("height"); err != nil {
		return nil, err
	}
	if h.BBoxMin, err = c.vec3("bbox_min"); err != nil {
		return nil, err
	}
	if h.BBoxMax, err = c.vec3("bbox_max"); err != nil {
		return nil, err
	}
	if h.DataLength, err = c.u32("data_length"); err != nil {
		return nil, err
	}

	l := &layout{header: h}
	if h.IsCompressed() {
		if l.rows, err = c.rowDescriptors(int(h.Height)); err != nil {
			return nil, err
		}
	}

	l.blobOffset = c.off
	available := len(data) - c.off
	l.blobLength = int(h.DataLength)
	if uint64(h.DataLength) > uint64(available) {
		l.blobLength = available
		l.clamped = true
	}

	return l, nil
}

// cursor is a bounds-checked reader over a byte slice with a fixed byte order.
type cursor struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

func (c *cursor) take(n int, field string) ([]byte, error) {
	if have := len(c.buf) - c.off; n > have {
		return nil, &TruncatedError{Field: field, Need: n, Have: have}
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) u8(field string) (uint8, error) {
	b, err := c.take(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16(field string) (uint16, error) {
	b, err := c.take(2, field)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

func (c *cursor) u32(field string) (uint32, error) {
	b, err := c.take(4, field)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

func (c *cursor) vec3(field string) ([3]float32, error) {
	var v [3]float32
	b, err := c.take(12, field)
	if err != nil {
		return v, err
	}
	for i := range v {
		v[i] = math.Float32frombits(c.order.Uint32(b[i*4:]))
	}
	return v, nil
}

func (c *cursor) rowDescriptors(n int) ([]RowDescriptor, error) {
	b, err := c.take(n*RowDescriptorSize, "row_descriptors")
	if err != nil {
		return nil, err
	}

	rows := make([]RowDescriptor, n)
	for i := range rows {
		d := b[i*RowDescriptorSize:]
		rows[i] = RowDescriptor{
			Start: c.order.Uint16(d[0:2]),
			Count: c.order.Uint16(d[2:4]),
			// #nosec G115 -- reinterpreting the stored two's complement value.
			Offset: int32(c.order.Uint32(d[4:8])),
		}
	}
	return rows, nil
}

// appendHeader serializes h in its own byte order. DataLength is written as given.
func appendHeader(dst []byte, h Header) []byte {
	order := h.Endianness.byteOrder()
	magic := h.Endianness.magic()

	dst = append(dst, magic[:]...)
	dst = append(dst, h.VersionMajor, h.VersionMinor)
	dst = append(dst, h.Padding[:]...)
	dst = order.AppendUint32(dst, h.Compressed)
	dst = order.AppendUint16(dst, h.Width)
	dst = order.AppendUint16(dst, h.Height)
	for _, v := range h.BBoxMin {
		dst = order.AppendUint32(dst, math.Float32bits(v))
	}
	for _, v := range h.BBoxMax {
		dst = order.AppendUint32(dst, math.Float32bits(v))
	}
	return order.AppendUint32(dst, h.DataLength)
}

func appendRowDescriptors(dst []byte, order byteOrder, rows []RowDescriptor) []byte {
	for _, d := range rows {
		dst = order.AppendUint16(dst, d.Start)
		dst = order.AppendUint16(dst, d.Count)
		// #nosec G115 -- storing the two's complement value.
		dst = order.AppendUint32(dst, uint32(d.Offset))
	}
	return dst
}
