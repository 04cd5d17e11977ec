package texture

import (
	"github.com/woozymasta/bcn"
)

// enf1Marker tags a DDS header as written for the Enfusion engine ("ENF1").
const enf1Marker = 0x31464e45

// fourCCFormats maps DDS FourCC codes to formats.
var fourCCFormats = map[string]bcn.Format{
	"DXT1": bcn.FormatDXT1,
	"DXT2": bcn.FormatDXT3,
	"DXT3": bcn.FormatDXT3,
	"DXT4": bcn.FormatDXT5,
	"DXT5": bcn.FormatDXT5,
	"ATI1": bcn.FormatBC4,
	"BC4U": bcn.FormatBC4,
	"BC4S": bcn.FormatBC4,
	"ATI2": bcn.FormatBC5,
	"BC5U": bcn.FormatBC5,
	"BC5S": bcn.FormatBC5,
}

// writeFourCC is the code written for each block compressed format.
var writeFourCC = map[bcn.Format]string{
	bcn.FormatDXT1: "DXT1",
	bcn.FormatDXT3: "DXT3",
	bcn.FormatDXT5: "DXT5",
	bcn.FormatBC4:  "ATI1",
	bcn.FormatBC5:  "ATI2",
}

// dxgiFormats maps the DX10 extension DXGI codes this package understands.
var dxgiFormats = map[uint32]bcn.Format{
	28: bcn.FormatRGBA8,
	71: bcn.FormatDXT1,
	74: bcn.FormatDXT3,
	77: bcn.FormatDXT5,
	80: bcn.FormatBC4,
	83: bcn.FormatBC5,
	87: bcn.FormatBGRA8,
}

// ParseFormat maps a user facing name to a supported texture format.
func ParseFormat(name string) (bcn.Format, bool) {
	switch name {
	case "bgra8", "BGRA8", "":
		return bcn.FormatBGRA8, true
	case "rgba8", "RGBA8":
		return bcn.FormatRGBA8, true
	case "bc4", "BC4", "ati1", "ATI1":
		return bcn.FormatBC4, true
	case "dxt1", "DXT1":
		return bcn.FormatDXT1, true
	case "dxt5", "DXT5":
		return bcn.FormatDXT5, true
	default:
		return bcn.FormatUnknown, false
	}
}

func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) bcn.Format {
	if dx10 != nil {
		if f, ok := dxgiFormats[dx10.DXGIFormat]; ok {
			return f
		}
		return bcn.FormatUnknown
	}

	pf := header.PixelFormat
	if pf.Flags&bcn.DDSPFFourCC != 0 {
		if f, ok := fourCCFormats[fourCCString(pf.FourCC)]; ok {
			return f
		}
		return bcn.FormatUnknown
	}

	if pf.Flags&bcn.DDSPFRGB != 0 && pf.Flags&bcn.DDSPFAlphaPixels != 0 && pf.RGBBitCount == 32 &&
		pf.GBitMask == 0x0000ff00 && pf.ABitMask == 0xff000000 {
		switch {
		case pf.RBitMask == 0x000000ff && pf.BBitMask == 0x00ff0000:
			return bcn.FormatRGBA8
		case pf.RBitMask == 0x00ff0000 && pf.BBitMask == 0x000000ff:
			return bcn.FormatBGRA8
		}
	}

	return bcn.FormatUnknown
}

func fourCCString(v uint32) string {
	return string([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func fourCC(code string) uint32 {
	return uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24
}

// expectedDataLength returns the payload size of one mip level, or -1 for an
// unknown format.
func expectedDataLength(format bcn.Format, width, height int) int {
	blocks := ((width + 3) / 4) * ((height + 3) / 4)
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return blocks * 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return blocks * 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}

func makeDDSHeader(width, height, mipMapCount uint32, format bcn.Format) (*bcn.DDSHeader, error) {
	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat),
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: mipMapCount,
		Caps:        uint32(bcn.DDSCapsTexture),
	}
	hdr.Reserved1[1] = enf1Marker
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize
	if mipMapCount > 1 {
		hdr.Flags |= bcn.DDSFlagMipmapCount
		hdr.Caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}

	if code, ok := writeFourCC[format]; ok {
		hdr.Flags |= bcn.DDSFlagLinearSize
		hdr.PixelFormat.Flags = bcn.DDSPFFourCC
		hdr.PixelFormat.FourCC = fourCC(code)
		return hdr, nil
	}

	pf := &hdr.PixelFormat
	switch format {
	case bcn.FormatRGBA8:
		pf.RBitMask, pf.BBitMask = 0x000000ff, 0x00ff0000
	case bcn.FormatBGRA8:
		pf.RBitMask, pf.BBitMask = 0x00ff0000, 0x000000ff
	default:
		return nil, ErrInvalidFormat
	}
	hdr.Flags |= bcn.DDSFlagPitch
	pf.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
	pf.RGBBitCount = 32
	pf.GBitMask = 0x0000ff00
	pf.ABitMask = 0xff000000
	hdr.PitchOrLinearSize = width * 4

	return hdr, nil
}
