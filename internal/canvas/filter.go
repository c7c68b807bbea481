package canvas

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// DefaultBlurRadius and DefaultSharpenGain are the values callers use when
// the user gives none.
const (
	DefaultBlurRadius  = 3
	DefaultSharpenGain = 1.0
)

// Negative inverts every color channel (255-v). Alpha is untouched, so
// applying Negative twice restores the original pixels exactly.
func (img *Image) Negative() *Image {
	img.buf = adopt(img.buf.layout, imaging.Invert(img.buf.pix))
	return img
}

// GrayScale replaces the buffer with a single-channel luma equivalent.
func (img *Image) GrayScale() *Image {
	if img.buf.layout == LayoutGray {
		return img
	}
	img.buf = bufferFrom(LayoutGray, imaging.Grayscale(img.buf.pix))
	return img
}

// GreyScale is an alias of GrayScale.
func (img *Image) GreyScale() *Image { return img.GrayScale() }

// AddBorder surrounds the image with a frame thickness pixels wide painted
// in the given color.
func (img *Image) AddBorder(thickness int, colorSpec string) (*Image, error) {
	if thickness < 0 {
		return img, invalidGeometry("border thickness must be >= 0, got %d", thickness)
	}
	c, err := ParseColor(colorSpec)
	if err != nil {
		return img, err
	}
	if thickness == 0 {
		return img, nil
	}

	bg := imaging.New(img.Width()+2*thickness, img.Height()+2*thickness, c)
	out := imaging.Paste(bg, img.buf.pix, image.Pt(thickness, thickness))
	return img.replace(adopt(img.buf.layout, out)), nil
}

// Blur smooths the image with a Gaussian kernel. radius must be within 3-10.
func (img *Image) Blur(radius int) (*Image, error) {
	if radius < 3 || radius > 10 {
		return img, invalidArg("blur radius must be within 3-10, got %d", radius)
	}
	img.buf = bufferFrom(img.buf.layout, blur.Gaussian(img.buf.pix, float64(radius)))
	return img, nil
}

// Sharpen applies an unsharp mask of the given gain, within -1 to 2. Zero
// leaves the image unchanged and negative gains soften it instead.
func (img *Image) Sharpen(gain float64) (*Image, error) {
	if gain < -1 || gain > 2 || math.IsNaN(gain) {
		return img, invalidArg("sharpen gain must be within -1 to 2, got %v", gain)
	}
	switch {
	case gain == 0:
	case gain < 0:
		img.buf = adopt(img.buf.layout, imaging.Blur(img.buf.pix, -gain*1.5))
	default:
		img.buf = bufferFrom(img.buf.layout, effect.UnsharpMask(img.buf.pix, 2, gain))
	}
	return img, nil
}
