package canvas

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Rule is a Porter-Duff compositing rule.
type Rule int

const (
	RuleSrc Rule = iota
	RuleSrcOver
	RuleSrcIn
	RuleSrcOut
	RuleDstOver
	RuleDstIn
	RuleDstOut
)

// DefaultOverlayTransparency is the overlay alpha factor used when callers
// give none.
const DefaultOverlayTransparency = 0.25

var ruleNames = map[string]Rule{
	"SRC":      RuleSrc,
	"SRC_OVER": RuleSrcOver,
	"SRC_IN":   RuleSrcIn,
	"SRC_OUT":  RuleSrcOut,
	"DST_OVER": RuleDstOver,
	"DST_IN":   RuleDstIn,
	"DST_OUT":  RuleDstOut,
}

// ParseRule parses a compositing rule name such as "src_over"
// (case-insensitive). The empty string selects SRC_OVER.
func ParseRule(s string) (Rule, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return RuleSrcOver, nil
	}
	r, ok := ruleNames[strings.ReplaceAll(name, "-", "_")]
	if !ok {
		return 0, invalidArg("unknown compositing rule %q", s)
	}
	return r, nil
}

// blend combines a premultiplied source (s, sa) with a premultiplied
// destination (d, da). All values are in [0,1].
func (r Rule) blend(s, sa, d, da float64) (float64, float64) {
	switch r {
	case RuleSrc:
		return s, sa
	case RuleSrcIn:
		return s * da, sa * da
	case RuleSrcOut:
		return s * (1 - da), sa * (1 - da)
	case RuleDstOver:
		return s*(1-da) + d, sa*(1-da) + da
	case RuleDstIn:
		return d * sa, da * sa
	case RuleDstOut:
		return d * (1 - sa), da * (1 - sa)
	default:
		return s + d*(1-sa), sa + da*(1-sa)
	}
}

// Overlay blends top onto the image anchored at the top-left corner. The
// alpha of top is multiplied by transparency (0-1) and the rule is applied
// only where top covers the image.
func (img *Image) Overlay(top *Image, rule string, transparency float64) (*Image, error) {
	if top == nil {
		return img, invalidArg("overlay image is required")
	}
	r, err := ParseRule(rule)
	if err != nil {
		return img, err
	}
	if transparency < 0 || transparency > 1 || math.IsNaN(transparency) {
		return img, invalidArg("transparency must be within 0-1, got %v", transparency)
	}

	dst := img.buf.nrgba()
	src := top.buf.nrgba()
	opaque := img.buf.layout != LayoutARGB

	area := src.Rect.Intersect(dst.Rect)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			si := src.PixOffset(x, y)
			di := dst.PixOffset(x, y)
			sp := src.Pix[si : si+4 : si+4]
			dp := dst.Pix[di : di+4 : di+4]

			sa := float64(sp[3]) / 255 * transparency
			da := float64(dp[3]) / 255

			var out [3]float64
			var oa float64
			for c := 0; c < 3; c++ {
				s := float64(sp[c]) / 255 * sa
				d := float64(dp[c]) / 255 * da
				out[c], oa = r.blend(s, sa, d, da)
			}

			if opaque {
				// Layouts without alpha keep the premultiplied result,
				// which is the result flattened onto black.
				for c := 0; c < 3; c++ {
					dp[c] = to8(out[c])
				}
				dp[3] = 255
				continue
			}
			if oa <= 0 {
				dp[0], dp[1], dp[2], dp[3] = 0, 0, 0, 0
				continue
			}
			for c := 0; c < 3; c++ {
				dp[c] = to8(out[c] / oa)
			}
			dp[3] = to8(oa)
		}
	}

	// nrgba returned a converted copy for grayscale buffers.
	if img.buf.layout == LayoutGray {
		img.buf = bufferFrom(LayoutGray, dst)
	}
	return img, nil
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// Paste draws top with its own alpha so that its top-left corner lands on
// (x, y). Parts falling outside the image are clipped.
func (img *Image) Paste(top *Image, x, y int) (*Image, error) {
	if top == nil {
		return img, invalidArg("image to paste is required")
	}
	r := top.buf.pix.Bounds().Add(image.Pt(x, y))
	draw.Draw(img.buf.pix, r, top.buf.pix, image.Point{}, draw.Over)
	return img, nil
}

// DrawImage is an alias of Paste.
func (img *Image) DrawImage(top *Image, x, y int) (*Image, error) {
	return img.Paste(top, x, y)
}
