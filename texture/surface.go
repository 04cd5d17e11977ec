package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/woozymasta/hmap"
)

// PreviewOptions controls how a surface is turned into a viewable image.
type PreviewOptions struct {
	// Normalize stretches the surface range to 0..255.
	Normalize bool
	// Flip converts from storage to preview orientation.
	Flip bool
	// Scale enlarges the image by an integer factor with nearest neighbour.
	Scale int
}

// DefaultPreviewOptions matches the orientation and contrast the editor shows.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{Normalize: true, Flip: true, Scale: 1}
}

// Preview renders s as a grayscale image.
func Preview(s *hmap.Surface, opts PreviewOptions) image.Image {
	if opts.Normalize {
		s = Normalize(s)
	}
	if opts.Flip {
		s = FlipVertical(s)
	}
	return Scale(ToGray(s), opts.Scale)
}

// Import resamples img onto a width x height grid and, with flip set, turns it
// from preview back to storage orientation.
func Import(img image.Image, width, height int, flip bool) *hmap.Surface {
	s := FromImage(img, width, height)
	if flip {
		s = FlipVertical(s)
	}
	return s
}

// Normalize stretches the heights of s linearly to 0..255.
// A flat surface normalises to all zero.
func Normalize(s *hmap.Surface) *hmap.Surface {
	out := hmap.NewSurface(s.Width, s.Height)
	lo, hi := s.Range()
	if hi <= lo {
		return out
	}

	span := float32(hi - lo)
	for i, v := range s.Pix {
		out.Pix[i] = uint8(float32(v-lo) / span * 255)
	}
	return out
}

// FlipVertical mirrors s top to bottom. Rotating by 180 degrees and then
// mirroring left to right is the same transform, and it is its own inverse.
func FlipVertical(s *hmap.Surface) *hmap.Surface {
	out := hmap.NewSurface(s.Width, s.Height)
	for y := 0; y < s.Height; y++ {
		copy(out.Row(s.Height-1-y), s.Row(y))
	}
	return out
}

// ToGray copies s into an 8-bit grayscale image.
func ToGray(s *hmap.Surface) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		copy(img.Pix[y*img.Stride:], s.Row(y))
	}
	return img
}

// FromImage converts img to luminance on a width x height grid, resampling
// with Catmull-Rom when the sizes differ.
func FromImage(img image.Image, width, height int) *hmap.Surface {
	src := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, width, height))
	if src.Dx() == width && src.Dy() == height {
		draw.Draw(gray, gray.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(gray, gray.Bounds(), img, src, draw.Src, nil)
	}

	s := hmap.NewSurface(width, height)
	for y := 0; y < height; y++ {
		copy(s.Row(y), gray.Pix[y*gray.Stride:y*gray.Stride+width])
	}
	return s
}

// Scale enlarges img by factor with nearest neighbour. factor <= 1 returns img.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// toNRGBA expands a grayscale surface into an opaque NRGBA image for BCn encoding.
func toNRGBA(s *hmap.Surface) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		for x, v := range s.Row(y) {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return img
}

// redChannel reads the red channel of img into a surface; single channel
// formats such as BC4 decode into red.
func redChannel(img image.Image) *hmap.Surface {
	b := img.Bounds()
	s := hmap.NewSurface(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			s.Set(x, y, c.R)
		}
	}
	return s
}
