package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// adopt wraps a freshly produced result in a buffer of the given layout.
// NRGBA results are taken over without a copy when the layout is ARGB.
func adopt(layout Layout, pix *image.NRGBA) *buffer {
	if layout == LayoutARGB && pix.Rect.Min == (image.Point{}) {
		return &buffer{layout: layout, pix: pix}
	}
	return bufferFrom(layout, pix)
}

// exposedColor fills pixels uncovered by a geometric transform.
func (img *Image) exposedColor() color.NRGBA {
	if img.buf.layout == LayoutARGB {
		return color.NRGBA{}
	}
	return flattenColor
}

func (img *Image) checkRegion(x, y, w, h int) (image.Rectangle, error) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, invalidGeometry("region size must be positive, got %dx%d", w, h)
	}
	r := image.Rect(x, y, x+w, y+h)
	if !r.In(img.buf.pix.Bounds()) {
		return image.Rectangle{}, fmt.Errorf("%w: region %v outside image bounds %v",
			ErrOutOfBounds, r, img.buf.pix.Bounds())
	}
	return r, nil
}

// Crop replaces the image with the w x h region at (x, y). The region must
// lie entirely inside the image.
func (img *Image) Crop(x, y, w, h int) (*Image, error) {
	r, err := img.checkRegion(x, y, w, h)
	if err != nil {
		return img, err
	}
	return img.replace(adopt(img.buf.layout, imaging.Crop(img.buf.pix, r))), nil
}

// Copy returns a new w x h image holding the region at (x, y), shifted by
// (dx, dy) inside the new bounds. Uncovered pixels are transparent (black
// for layouts without alpha). The copy shares the drawing style but starts
// with an identity axis and no source descriptor.
func (img *Image) Copy(x, y, w, h, dx, dy int) (*Image, error) {
	r, err := img.checkRegion(x, y, w, h)
	if err != nil {
		return nil, err
	}
	buf, err := newBuffer(img.buf.layout, w, h, img.exposedColor())
	if err != nil {
		return nil, err
	}
	dst := image.Rect(dx, dy, dx+w, dy+h)
	draw.Draw(buf.pix, dst, img.buf.pix, r.Min, draw.Src)

	dc := img.dc.clone()
	dc.Axis = Identity()
	return &Image{buf: buf, dc: dc}, nil
}

var resampleFilters = map[string]imaging.ResampleFilter{
	"nearest":            imaging.NearestNeighbor,
	"nearestneighbor":    imaging.NearestNeighbor,
	"bilinear":           imaging.Linear,
	"linear":             imaging.Linear,
	"bicubic":            imaging.CatmullRom,
	"catmullrom":         imaging.CatmullRom,
	"lanczos":            imaging.Lanczos,
	"box":                imaging.Box,
	"hermite":            imaging.Hermite,
	"mitchell":           imaging.MitchellNetravali,
	"hamming":            imaging.Hamming,
	"hanning":            imaging.Hann,
	"hann":               imaging.Hann,
	"blackman":           imaging.Blackman,
	"bessel":             imaging.Gaussian,
	"gaussian":           imaging.Gaussian,
	"highestquality":     imaging.Lanczos,
	"highquality":        imaging.CatmullRom,
	"mediumquality":      imaging.MitchellNetravali,
	"highestperformance": imaging.NearestNeighbor,
	"highperformance":    imaging.Box,
	"mediumperformance":  imaging.Linear,
}

// ParseInterpolation resolves an interpolation name. The empty string
// selects bilinear.
func ParseInterpolation(name string) (imaging.ResampleFilter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	if key == "" {
		return imaging.Linear, nil
	}
	f, ok := resampleFilters[key]
	if !ok {
		return imaging.ResampleFilter{}, invalidArg("unknown interpolation %q", name)
	}
	return f, nil
}

// Resize resamples the image to exactly w x h. blurFactor above 1 smooths
// the source before resampling; it must be within 0-10.
func (img *Image) Resize(w, h int, interpolation string, blurFactor float64) (*Image, error) {
	if w <= 0 || h <= 0 {
		return img, invalidGeometry("size must be positive, got %dx%d", w, h)
	}
	filter, err := ParseInterpolation(interpolation)
	if err != nil {
		return img, err
	}
	if blurFactor < 0 || blurFactor > 10 || math.IsNaN(blurFactor) {
		return img, invalidArg("blur factor must be within 0-10, got %v", blurFactor)
	}

	var src image.Image = img.buf.pix
	if blurFactor > 1 {
		src = imaging.Blur(src, (blurFactor-1)/2)
	}
	return img.replace(adopt(img.buf.layout, imaging.Resize(src, w, h, filter))), nil
}

// fitSize returns the dimensions of a w x h image scaled to fit within
// maxW x maxH. A zero bound is unconstrained.
func fitSize(w, h, maxW, maxH int) (int, int) {
	sw := float64(maxW) / float64(w)
	sh := float64(maxH) / float64(h)

	var scale float64
	switch {
	case maxW == 0:
		scale = sh
	case maxH == 0:
		scale = sw
	default:
		scale = math.Min(sw, sh)
	}
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// ScaleToFit resizes the image preserving its aspect ratio so that it fits
// within w x h. When one bound is zero the image is scaled to the other.
func (img *Image) ScaleToFit(w, h int, interpolation string, blurFactor float64) (*Image, error) {
	if w < 0 || h < 0 {
		return img, invalidGeometry("bounds must be >= 0, got %dx%d", w, h)
	}
	if w == 0 && h == 0 {
		return img, invalidArg("at least one of width and height is required")
	}
	nw, nh := fitSize(img.Width(), img.Height(), w, h)
	return img.Resize(nw, nh, interpolation, blurFactor)
}

// FlipMode selects a mirror or quarter-turn transform.
type FlipMode int

const (
	FlipHorizontal FlipMode = iota
	FlipVertical
	FlipDiagonal
	FlipAntiDiagonal
	Flip90
	Flip180
	Flip270
)

var flipModes = map[string]FlipMode{
	"horizontal":   FlipHorizontal,
	"vertical":     FlipVertical,
	"diagonal":     FlipDiagonal,
	"antidiagonal": FlipAntiDiagonal,
	"90":           Flip90,
	"180":          Flip180,
	"270":          Flip270,
}

// ParseFlipMode parses a flip mode name (case-insensitive).
func ParseFlipMode(s string) (FlipMode, error) {
	m, ok := flipModes[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, invalidArg("unknown flip mode %q", s)
	}
	return m, nil
}

// Flip mirrors or turns the image. Quarter turns are clockwise; diagonal is
// a 90 degree turn followed by a horizontal mirror, antidiagonal a 270
// degree turn followed by a horizontal mirror.
func (img *Image) Flip(mode string) (*Image, error) {
	m, err := ParseFlipMode(mode)
	if err != nil {
		return img, err
	}

	src := img.buf.pix
	switch m {
	case FlipHorizontal:
		img.buf = adopt(img.buf.layout, imaging.FlipH(src))
		return img, nil
	case FlipVertical:
		img.buf = adopt(img.buf.layout, imaging.FlipV(src))
		return img, nil
	}

	// imaging turns counter-clockwise.
	var out *image.NRGBA
	switch m {
	case Flip90:
		out = imaging.Rotate270(src)
	case Flip180:
		out = imaging.Rotate180(src)
	case Flip270:
		out = imaging.Rotate90(src)
	case FlipDiagonal:
		out = imaging.FlipH(imaging.Rotate270(src))
	case FlipAntiDiagonal:
		out = imaging.FlipH(imaging.Rotate90(src))
	}
	return img.replace(adopt(img.buf.layout, out)), nil
}

// Rotate turns the whole image clockwise by degrees around its center. The
// buffer grows to the bounding box of the rotated rectangle.
func (img *Image) Rotate(degrees float64) (*Image, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return img, invalidArg("rotation angle must be finite, got %v", degrees)
	}
	out := imaging.Rotate(img.buf.pix, -degrees, img.exposedColor())
	return img.replace(adopt(img.buf.layout, out)), nil
}

// ShearDirection names the direction of a whole-image shear.
type ShearDirection int

const (
	ShearHorizontal ShearDirection = iota
	ShearVertical
)

// ParseShearDirection parses "horizontal" or "vertical" (or "x"/"y").
func ParseShearDirection(s string) (ShearDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "x":
		return ShearHorizontal, nil
	case "vertical", "v", "y":
		return ShearVertical, nil
	default:
		return 0, invalidArg("unknown shear direction %q", s)
	}
}

// maxShearPixels bounds the area of a sheared result. The shear is
// supersampled at twice the resolution, so the working buffer is four times
// this size.
const maxShearPixels = 1 << 25

// ShearBounds returns the sheared bounding box. Shear's result fits in it,
// and may round a pixel short. Factors whose result cannot be allocated
// fail with ErrInvalidGeometry.
func (img *Image) ShearBounds(factor float64, direction string) (width, height int, err error) {
	d, err := ParseShearDirection(direction)
	if err != nil {
		return 0, 0, err
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return 0, 0, invalidArg("shear factor must be finite, got %v", factor)
	}

	m := Shearing(factor, 0)
	if d == ShearVertical {
		m = Shearing(0, factor)
	}
	w, h := float64(img.Width()), float64(img.Height())
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := m.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	bw, bh := math.Floor(maxX-minX), math.Floor(maxY-minY)
	if bw*bh > maxShearPixels {
		return 0, 0, invalidGeometry("shear by %v gives a %.0fx%.0f image", factor, bw, bh)
	}
	return int(bw), int(bh), nil
}

// Shear skews the whole image by factor along direction, matching
// ShearAxis: horizontally each row moves right by factor*y, vertically each
// column moves down by factor*x. The buffer grows to the sheared bounding
// box.
func (img *Image) Shear(factor float64, direction string) (*Image, error) {
	if _, _, err := img.ShearBounds(factor, direction); err != nil {
		return img, err
	}
	if factor == 0 {
		return img, nil
	}
	d, _ := ParseShearDirection(direction)

	// bild samples source x at x + k*y, which moves rows against k.
	angle := -math.Atan(factor) * 180 / math.Pi
	var out *image.RGBA
	if d == ShearHorizontal {
		out = transform.ShearH(img.buf.pix, angle)
	} else {
		out = transform.ShearV(img.buf.pix, angle)
	}
	return img.replace(bufferFrom(img.buf.layout, out)), nil
}
