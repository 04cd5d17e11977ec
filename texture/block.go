package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4 chunk-stream block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the uncompressed size of one LZ4 chunk and of the rolling dictionary.
	ChunkSize = 64 * 1024

	// payloads below this size are always stored as COPY
	minCompressSize = 1024
	// a chunk or stream compressing worse than this ratio falls back to COPY
	maxCompressRatio = 0.85

	chunkLastFlag = 0x80
	maxChunkSize  = 1<<24 - 1
)

// block is one mip level body.
type block struct {
	magic string
	data  []byte
	// rawSize is the uncompressed size, written ahead of LZ4 chunk streams.
	rawSize int32
}

// size is the value stored in the block table.
func (b *block) size() int {
	if b.magic == BlockMagicLZ4 {
		return 4 + len(b.data)
	}
	return len(b.data)
}

// packBlock stores data as an LZ4 chunk stream, or as COPY when compression
// is disabled or does not pay off.
func packBlock(data []byte, compress bool) (*block, error) {
	rawSize, err := i32FromInt(len(data))
	if err != nil {
		return nil, err
	}
	stored := &block{magic: BlockMagicCOPY, data: data, rawSize: rawSize}
	if !compress || len(data) < minCompressSize {
		return stored, nil
	}

	stream, ok, err := compressChunks(data)
	if err != nil {
		return nil, err
	}
	if !ok || float64(4+len(stream)) > float64(len(data))*maxCompressRatio {
		return stored, nil
	}
	if _, err := i32FromInt(4 + len(stream)); err != nil {
		return nil, err
	}

	return &block{magic: BlockMagicLZ4, data: stream, rawSize: rawSize}, nil
}

// compressChunks encodes data as independent LZ4 chunks with a 3 byte size and
// a flags byte each. ok is false when a chunk does not compress well enough.
func compressChunks(data []byte) (stream []byte, ok bool, err error) {
	var out bytes.Buffer
	scratch := make([]byte, lz4.CompressBlockBound(ChunkSize))

	for off := 0; off < len(data); off += ChunkSize {
		end := min(off+ChunkSize, len(data))
		chunk := data[off:end]

		n, err := lz4.CompressBlockHC(chunk, scratch, 0, nil, nil)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if n == 0 || float64(n) > float64(len(chunk))*maxCompressRatio {
			return nil, false, nil
		}
		if n > maxChunkSize {
			return nil, false, fmt.Errorf("%w: %d", ErrChunkTooLarge, n)
		}

		var flags byte
		if end == len(data) {
			flags = chunkLastFlag
		}
		out.Write([]byte{byte(n), byte(n >> 8), byte(n >> 16), flags})
		out.Write(scratch[:n])
	}

	return out.Bytes(), true, nil
}

// unpackBlock returns the raw payload of b, which must decode to want bytes.
func unpackBlock(b *block, want int) ([]byte, error) {
	switch b.magic {
	case BlockMagicCOPY:
		if len(b.data) != want {
			return nil, fmt.Errorf("%w: COPY expected %d, got %d", ErrDecodedSizeMismatch, want, len(b.data))
		}
		return bytes.Clone(b.data), nil
	case BlockMagicLZ4:
		if int(b.rawSize) != want {
			return nil, fmt.Errorf("%w: LZ4 header says %d, expected %d", ErrDecodedSizeMismatch, b.rawSize, want)
		}
		return decompressChunks(b.data, want)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, b.magic)
	}
}

// decompressChunks decodes a chunk stream into want bytes. Every chunk may
// reference the previous 64 KiB of output.
func decompressChunks(stream []byte, want int) ([]byte, error) {
	out := make([]byte, want)
	var dict window
	pos := 0
	r := bytes.NewReader(stream)

	for {
		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: chunk header at output %d", ErrChunkStreamTruncated, pos)
		}
		n := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		flags := hdr[3]
		if flags&^chunkLastFlag != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if n <= 0 || n > r.Len() {
			return nil, fmt.Errorf("%w: chunk of %d bytes, %d remain", ErrChunkStreamTruncated, n, r.Len())
		}
		if pos >= want {
			return nil, fmt.Errorf("%w: data past %d bytes", ErrDecodedSizeMismatch, want)
		}

		compressed := make([]byte, n)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkStreamTruncated, err)
		}

		dst := out[pos:min(pos+ChunkSize, want)]
		got, err := lz4.UncompressBlockWithDict(compressed, dst, dict.bytes())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		dict.push(dst[:got])
		pos += got

		if flags&chunkLastFlag != 0 {
			break
		}
	}

	if pos != want {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, want, pos)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after last chunk", ErrDecodedSizeMismatch, r.Len())
	}
	return out, nil
}

// window keeps the last ChunkSize bytes of decoded output.
type window struct {
	buf []byte
}

func (w *window) bytes() []byte {
	return w.buf
}

func (w *window) push(p []byte) {
	if len(p) >= ChunkSize {
		w.buf = append(w.buf[:0], p[len(p)-ChunkSize:]...)
		return
	}
	if drop := len(w.buf) + len(p) - ChunkSize; drop > 0 {
		w.buf = append(w.buf[:0], w.buf[drop:]...)
	}
	w.buf = append(w.buf, p...)
}

type blockEntry struct {
	magic string
	size  int32
}

// writeBlocks writes the block table then the bodies, both smallest mip first.
// blocks is ordered largest first.
func writeBlocks(w io.Writer, blocks []*block) error {
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		size, err := i32FromInt(b.size())
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, b.magic); err != nil {
			return fmt.Errorf("%w: mipmap %d magic: %v", ErrWriteBlock, i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, size); err != nil {
			return fmt.Errorf("%w: mipmap %d size: %v", ErrWriteBlock, i, err)
		}
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if b.magic == BlockMagicLZ4 {
			if err := binary.Write(w, binary.LittleEndian, b.rawSize); err != nil {
				return fmt.Errorf("%w: mipmap %d raw size: %v", ErrWriteBlock, i, err)
			}
		}
		if _, err := w.Write(b.data); err != nil {
			return fmt.Errorf("%w: mipmap %d body: %v", ErrWriteBlock, i, err)
		}
	}
	return nil
}

func readBlockTable(r io.Reader, count int) ([]blockEntry, error) {
	entries := make([]blockEntry, count)
	for i := range entries {
		var raw [8]byte
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBlockTable, i, err)
		}

		magic := string(raw[:4])
		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
			return nil, fmt.Errorf("%w: entry %d: %w %q", ErrBlockTable, i, ErrUnknownBlockMagic, magic)
		}
		// #nosec G115 -- stored as a signed 32-bit size.
		size := int32(binary.LittleEndian.Uint32(raw[4:]))
		if size < 0 {
			return nil, fmt.Errorf("%w: entry %d: negative size %d", ErrBlockTable, i, size)
		}
		entries[i] = blockEntry{magic: magic, size: size}
	}
	return entries, nil
}

// readBlockBody reads one body; LZ4 bodies have their size prefix split off.
func readBlockBody(r io.Reader, e blockEntry) (*block, error) {
	data := make([]byte, e.size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockBody, e.magic, err)
	}
	if e.magic != BlockMagicLZ4 {
		return &block{magic: e.magic, data: data, rawSize: e.size}, nil
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: missing size prefix", ErrChunkStreamTruncated)
	}
	// #nosec G115 -- stored as a signed 32-bit size.
	rawSize := int32(binary.LittleEndian.Uint32(data[:4]))
	return &block{magic: e.magic, data: data[4:], rawSize: rawSize}, nil
}
