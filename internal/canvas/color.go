package canvas

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// palette holds the named colors accepted wherever a color spec is expected.
var palette = map[string]color.NRGBA{
	"black":     {0, 0, 0, 255},
	"blue":      {0, 0, 255, 255},
	"cyan":      {0, 255, 255, 255},
	"darkgray":  {64, 64, 64, 255},
	"gray":      {128, 128, 128, 255},
	"green":     {0, 255, 0, 255},
	"lightgray": {192, 192, 192, 255},
	"magenta":   {255, 0, 255, 255},
	"orange":    {255, 200, 0, 255},
	"pink":      {255, 175, 175, 255},
	"red":       {255, 0, 0, 255},
	"white":     {255, 255, 255, 255},
	"yellow":    {255, 255, 0, 255},
}

// ColorNames returns the names accepted by ParseColor, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseColor resolves a color specification.
//
// Accepted forms:
//   - a palette name (case-insensitive, "grey" spellings accepted)
//   - "#RGB", "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional)
//   - "r,g,b" with decimal components 0-255
//
// Anything else fails with ErrInvalidColor.
func ParseColor(spec string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("%w: empty color", ErrInvalidColor)
	}

	if c, ok := palette[strings.ReplaceAll(s, "grey", "gray")]; ok {
		return c, nil
	}

	if strings.Contains(s, ",") {
		return parseRGBList(s)
	}

	c, err := parseHexColor(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, spec, err)
	}
	return c, nil
}

// parseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA".
func parseHexColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(hex, "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		fallthrough
	case 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return color.NRGBA{}, err
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		return color.NRGBA{
			R: uint8(val >> 24),
			G: uint8(val >> 16),
			B: uint8(val >> 8),
			A: uint8(val),
		}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}
}

func parseRGBList(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.NRGBA{}, fmt.Errorf("%w: %q: want r,g,b", ErrInvalidColor, s)
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: %q: component %d out of range", ErrInvalidColor, s, i)
		}
		v[i] = uint8(n)
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: 255}, nil
}

// shade lightens (factor > 1) or darkens (factor < 1) c in HSL space,
// keeping its alpha. Used for the highlight and shadow edges of beveled
// rectangles.
func shade(c color.NRGBA, factor float64) color.NRGBA {
	cf, _ := colorful.MakeColor(color.NRGBA{c.R, c.G, c.B, 255})
	h, s, l := cf.Hsl()
	l = math.Max(0, math.Min(1, l*factor))
	if factor > 1 && l == 0 {
		l = 0.3
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
// A is straight (non-premultiplied) opacity: 0 transparent, 255 opaque.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGB  RGBColor  `json:"rgb"`
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// DescribeColor describes a straight-alpha color in several notations.
func DescribeColor(c color.NRGBA) *ColorResult {
	cf, _ := colorful.MakeColor(color.NRGBA{c.R, c.G, c.B, 255})
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// SampleColor returns the color at a pixel coordinate.
//
// Parameters:
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in hex, RGB, RGBA and HSL.
//   - error: ErrOutOfBounds if the point lies outside the image.
//
// # Coordinate System
//
// Coordinates are buffer pixels with the origin at the top-left; the
// drawing axis does not apply:
//   - Valid X range: 0 to width-1
//   - Valid Y range: 0 to height-1
//
// # Color Conversion
//
// Gray buffers report R = G = B. RGB buffers always report A = 255; ARGB
// buffers report straight (non-premultiplied) alpha.
func (img *Image) SampleColor(x, y int) (*ColorResult, error) {
	b := img.buf.pix.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return nil, fmt.Errorf("%w: coordinates (%d,%d) outside image bounds", ErrOutOfBounds, x, y)
	}
	c := color.NRGBAModel.Convert(img.buf.pix.At(x, y)).(color.NRGBA)
	return DescribeColor(c), nil
}
