package texture

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidFormat indicates an unsupported texture format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrEmptySurface indicates a surface without cells.
	ErrEmptySurface = errors.New("empty surface")
	// ErrOpenFile indicates opening a texture or image file failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates creating a texture or image file failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrDecodeImage indicates image decode failed.
	ErrDecodeImage = errors.New("decode image failed")
	// ErrEncodeImage indicates image encode failed.
	ErrEncodeImage = errors.New("encode image failed")
	// ErrMipmapSizeMismatch indicates a mip payload of unexpected size.
	ErrMipmapSizeMismatch = errors.New("mipmap size mismatch")
	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrChunkStreamTruncated indicates the LZ4 chunk stream ends early.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrChunkTooLarge indicates a compressed chunk exceeds the 24-bit size field.
	ErrChunkTooLarge = errors.New("compressed chunk too large")
	// ErrDecodedSizeMismatch indicates the decoded block has the wrong size.
	ErrDecodedSizeMismatch = errors.New("decoded block size mismatch")
	// ErrUnknownBlockMagic indicates a block magic other than COPY or LZ4.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrBlockTable indicates the block table is unreadable or inconsistent.
	ErrBlockTable = errors.New("invalid block table")
	// ErrBlockBody indicates a block body could not be read.
	ErrBlockBody = errors.New("read block body failed")
	// ErrDDSHeader indicates the DDS header could not be read or written.
	ErrDDSHeader = errors.New("DDS header failed")
	// ErrWriteBlock indicates writing a block table entry or body failed.
	ErrWriteBlock = errors.New("write block failed")
)
