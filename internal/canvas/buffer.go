package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Layout is the per-pixel channel arrangement of a pixel buffer.
type Layout int

const (
	// LayoutRGB is an opaque color buffer. Alpha is always 255.
	LayoutRGB Layout = iota
	// LayoutARGB is a color buffer with a straight (non-premultiplied) alpha channel.
	LayoutARGB
	// LayoutGray is a single 8-bit intensity channel.
	LayoutGray
)

// String returns the canonical layout name.
func (l Layout) String() string {
	switch l {
	case LayoutRGB:
		return "rgb"
	case LayoutARGB:
		return "argb"
	case LayoutGray:
		return "grayscale"
	default:
		return "unknown"
	}
}

// ParseLayout parses a channel layout name. Matching is case-insensitive and
// accepts both gray and grey spellings.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb":
		return LayoutRGB, nil
	case "argb", "rgba":
		return LayoutARGB, nil
	case "gray", "grey", "grayscale", "greyscale":
		return LayoutGray, nil
	default:
		return 0, invalidArg("unsupported channel layout %q", s)
	}
}

// buffer owns the pixels of an Image. Color layouts are backed by
// *image.NRGBA and grayscale by *image.Gray; the backing type never changes
// for the life of a buffer.
type buffer struct {
	layout Layout
	pix    draw.Image
}

// flattenColor is what transparent pixels become in layouts without alpha.
var flattenColor = color.NRGBA{0, 0, 0, 255}

// newBuffer allocates a width x height buffer filled with fill.
func newBuffer(layout Layout, width, height int, fill color.Color) (*buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidGeometry("dimensions must be positive, got %dx%d", width, height)
	}
	rect := image.Rect(0, 0, width, height)

	var pix draw.Image
	switch layout {
	case LayoutRGB, LayoutARGB:
		pix = image.NewNRGBA(rect)
	case LayoutGray:
		pix = image.NewGray(rect)
	default:
		return nil, invalidArg("unsupported channel layout %d", layout)
	}

	b := &buffer{layout: layout, pix: pix}
	if layout == LayoutRGB {
		draw.Draw(pix, rect, image.NewUniform(flattenColor), image.Point{}, draw.Src)
		draw.Draw(pix, rect, image.NewUniform(fill), image.Point{}, draw.Over)
	} else {
		draw.Draw(pix, rect, image.NewUniform(fill), image.Point{}, draw.Src)
	}
	return b, nil
}

// bufferFrom converts src into a freshly allocated buffer of the given
// layout, rebased so that its bounds start at (0,0).
func bufferFrom(layout Layout, src image.Image) *buffer {
	sb := src.Bounds()
	rect := image.Rect(0, 0, sb.Dx(), sb.Dy())

	switch layout {
	case LayoutGray:
		dst := image.NewGray(rect)
		draw.Draw(dst, rect, src, sb.Min, draw.Src)
		return &buffer{layout: layout, pix: dst}
	case LayoutRGB:
		dst := image.NewNRGBA(rect)
		draw.Draw(dst, rect, image.NewUniform(flattenColor), image.Point{}, draw.Src)
		draw.Draw(dst, rect, src, sb.Min, draw.Over)
		return &buffer{layout: layout, pix: dst}
	default:
		// imaging.Clone copies into an NRGBA without premultiplication
		// round trips for NRGBA sources.
		return &buffer{layout: LayoutARGB, pix: imaging.Clone(src)}
	}
}

// layoutOf picks the layout that best preserves a decoded image.
func layoutOf(img image.Image) Layout {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return LayoutGray
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return LayoutARGB
	}
	return LayoutRGB
}

func (b *buffer) width() int  { return b.pix.Bounds().Dx() }
func (b *buffer) height() int { return b.pix.Bounds().Dy() }

// clone returns a deep copy of the buffer.
func (b *buffer) clone() *buffer {
	switch p := b.pix.(type) {
	case *image.Gray:
		dst := image.NewGray(p.Rect)
		copy(dst.Pix, p.Pix)
		return &buffer{layout: b.layout, pix: dst}
	case *image.NRGBA:
		dst := image.NewNRGBA(p.Rect)
		copy(dst.Pix, p.Pix)
		return &buffer{layout: b.layout, pix: dst}
	default:
		panic(fmt.Sprintf("canvas: unexpected buffer type %T", b.pix))
	}
}

// nrgba returns the buffer as an NRGBA image. Color buffers are returned
// directly (callers must not mutate the result); grayscale is converted.
func (b *buffer) nrgba() *image.NRGBA {
	if p, ok := b.pix.(*image.NRGBA); ok {
		return p
	}
	return imaging.Clone(b.pix)
}
