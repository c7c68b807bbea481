package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Point is a coordinate in drawing axis space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// newLayer returns a transparent gg context the size of the buffer with the
// drawing axis and stroke installed. ok is false when the axis is singular
// and nothing drawn through it can be visible.
func (img *Image) newLayer() (*gg.Context, bool) {
	d, ok := img.dc.Axis.decompose()
	if !ok {
		return nil, false
	}

	dc := gg.NewContext(img.Width(), img.Height())
	dc.Translate(d.tx, d.ty)
	dc.Rotate(d.theta)
	dc.Shear(d.k, 0)
	dc.Scale(d.sx, d.sy)

	s := img.dc.Stroke
	dc.SetLineWidth(s.Width)
	switch s.Cap {
	case CapButt:
		dc.SetLineCap(gg.LineCapButt)
	case CapSquare:
		dc.SetLineCap(gg.LineCapSquare)
	default:
		dc.SetLineCap(gg.LineCapRound)
	}
	// gg has no miter joins; miters render beveled.
	if s.Join == JoinRound {
		dc.SetLineJoin(gg.LineJoinRound)
	} else {
		dc.SetLineJoin(gg.LineJoinBevel)
	}
	dc.SetDash(s.Dash...)
	dc.SetDashOffset(s.DashPhase)

	// Layers record coverage only; the real color is applied when
	// compositing.
	dc.SetColor(color.White)
	return dc, true
}

// render draws paint into a coverage layer and composites col through it.
// With replace set, covered pixels take col (alpha included) instead of
// blending over what is there, and the drawing transparency is ignored.
func (img *Image) render(col color.NRGBA, replace bool, paint func(dc *gg.Context)) {
	opacity := img.dc.opacity()
	if replace {
		opacity = 1
	}
	if opacity <= 0 {
		return
	}
	layer, ok := img.newLayer()
	if !ok {
		return
	}
	paint(layer)

	mask := img.coverage(layer, opacity)
	if mask == nil {
		return
	}
	dst := img.buf.pix
	if replace {
		replaceMasked(dst, mask, col)
		return
	}
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// coverage converts the alpha of a layer into a mask, thresholded when
// antialiasing is off and scaled by opacity.
func (img *Image) coverage(layer *gg.Context, opacity float64) *image.Alpha {
	cov, ok := layer.Image().(*image.RGBA)
	if !ok {
		return nil
	}
	mask := image.NewAlpha(cov.Rect)
	for i := range mask.Pix {
		a := cov.Pix[i*4+3]
		if !img.dc.Antialias {
			if a >= 128 {
				a = 255
			} else {
				a = 0
			}
		}
		mask.Pix[i] = uint8(float64(a)*opacity + 0.5)
	}
	return mask
}

// replaceMasked interpolates each pixel of dst toward col by the mask value.
// Unlike draw.Src through a mask, uncovered pixels are left alone.
func replaceMasked(dst draw.Image, mask *image.Alpha, col color.NRGBA) {
	b := mask.Rect.Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := mask.AlphaAt(x, y).A
			switch m {
			case 0:
			case 255:
				dst.Set(x, y, col)
			default:
				d := color.NRGBAModel.Convert(dst.At(x, y)).(color.NRGBA)
				dst.Set(x, y, color.NRGBA{
					R: mix(d.R, col.R, m),
					G: mix(d.G, col.G, m),
					B: mix(d.B, col.B, m),
					A: mix(d.A, col.A, m),
				})
			}
		}
	}
}

func mix(a, b, t uint8) uint8 {
	return uint8((int(a)*(255-int(t)) + int(b)*int(t) + 127) / 255)
}

// shape fills or strokes the geometry built by path with the drawing color.
func (img *Image) shape(path func(dc *gg.Context), filled bool) {
	img.render(img.dc.Color, false, func(dc *gg.Context) {
		path(dc)
		if filled {
			dc.Fill()
		} else {
			dc.Stroke()
		}
	})
}

func checkSize(what string, w, h float64) error {
	if w < 0 || h < 0 || math.IsNaN(w) || math.IsNaN(h) {
		return invalidGeometry("%s width and height must be >= 0, got %vx%v", what, w, h)
	}
	return nil
}

// DrawPoint paints a single point, sized by the stroke width.
func (img *Image) DrawPoint(x, y float64) (*Image, error) {
	size := math.Max(1, img.dc.Stroke.Width)
	off := (size - 1) / 2
	img.shape(func(dc *gg.Context) {
		dc.DrawRectangle(x-off, y-off, size, size)
	}, true)
	return img, nil
}

// DrawLine strokes a line from (x1, y1) to (x2, y2).
func (img *Image) DrawLine(x1, y1, x2, y2 float64) (*Image, error) {
	img.shape(func(dc *gg.Context) {
		dc.DrawLine(x1, y1, x2, y2)
	}, false)
	return img, nil
}

// DrawLines draws a polyline through points. A closed or filled polyline is
// a polygon.
func (img *Image) DrawLines(points []Point, closed, filled bool) (*Image, error) {
	if len(points) < 2 {
		return img, invalidGeometry("need at least 2 points, got %d", len(points))
	}
	img.shape(func(dc *gg.Context) {
		dc.NewSubPath()
		dc.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if closed || filled {
			dc.ClosePath()
		}
	}, filled)
	return img, nil
}

// DrawRect draws a rectangle with its top-left corner at (x, y).
func (img *Image) DrawRect(x, y, w, h float64, filled bool) (*Image, error) {
	if err := checkSize("rectangle", w, h); err != nil {
		return img, err
	}
	img.shape(func(dc *gg.Context) {
		dc.DrawRectangle(x, y, w, h)
	}, filled)
	return img, nil
}

// DrawRoundRect draws a rectangle whose corners are elliptical arcs of
// arcW x arcH.
func (img *Image) DrawRoundRect(x, y, w, h, arcW, arcH float64, filled bool) (*Image, error) {
	if err := checkSize("rectangle", w, h); err != nil {
		return img, err
	}
	if err := checkSize("corner arc", arcW, arcH); err != nil {
		return img, err
	}
	rx := math.Min(arcW, w) / 2
	ry := math.Min(arcH, h) / 2

	img.shape(func(dc *gg.Context) {
		if rx == 0 || ry == 0 {
			dc.DrawRectangle(x, y, w, h)
			return
		}
		dc.NewSubPath()
		dc.MoveTo(x+rx, y)
		dc.LineTo(x+w-rx, y)
		dc.DrawEllipticalArc(x+w-rx, y+ry, rx, ry, -math.Pi/2, 0)
		dc.LineTo(x+w, y+h-ry)
		dc.DrawEllipticalArc(x+w-rx, y+h-ry, rx, ry, 0, math.Pi/2)
		dc.LineTo(x+rx, y+h)
		dc.DrawEllipticalArc(x+rx, y+h-ry, rx, ry, math.Pi/2, math.Pi)
		dc.LineTo(x, y+ry)
		dc.DrawEllipticalArc(x+rx, y+ry, rx, ry, math.Pi, 3*math.Pi/2)
		dc.ClosePath()
	}, filled)
	return img, nil
}

// DrawBeveledRect draws a rectangle that appears raised or depressed: the
// top and left edges are highlighted and the bottom and right edges shaded
// (swapped when depressed). A filled depressed rectangle uses a darker fill.
func (img *Image) DrawBeveledRect(x, y, w, h float64, raised, filled bool) (*Image, error) {
	if err := checkSize("rectangle", w, h); err != nil {
		return img, err
	}
	base := img.dc.Color
	light, dark := shade(base, 1.4), shade(base, 0.7)

	if filled {
		fill := base
		if !raised {
			fill = dark
		}
		img.render(fill, false, func(dc *gg.Context) {
			dc.DrawRectangle(x, y, w, h)
			dc.Fill()
		})
	}

	topLeft, bottomRight := light, dark
	if !raised {
		topLeft, bottomRight = dark, light
	}
	img.render(topLeft, false, func(dc *gg.Context) {
		dc.MoveTo(x, y+h)
		dc.LineTo(x, y)
		dc.LineTo(x+w, y)
		dc.Stroke()
	})
	img.render(bottomRight, false, func(dc *gg.Context) {
		dc.MoveTo(x+w, y)
		dc.LineTo(x+w, y+h)
		dc.LineTo(x, y+h)
		dc.Stroke()
	})
	return img, nil
}

// DrawOval draws the ellipse inscribed in the w x h box at (x, y).
func (img *Image) DrawOval(x, y, w, h float64, filled bool) (*Image, error) {
	if err := checkSize("oval", w, h); err != nil {
		return img, err
	}
	img.shape(func(dc *gg.Context) {
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	}, filled)
	return img, nil
}

// DrawArc draws part of the ellipse inscribed in the w x h box at (x, y).
// Angles are in degrees; 0 points to 3 o'clock and positive values turn
// counter-clockwise. A filled arc is a pie slice closed through the center.
func (img *Image) DrawArc(x, y, w, h, startAngle, sweep float64, filled bool) (*Image, error) {
	if err := checkSize("arc", w, h); err != nil {
		return img, err
	}
	cx, cy, rx, ry := x+w/2, y+h/2, w/2, h/2
	a1 := -startAngle * math.Pi / 180
	a2 := -(startAngle + sweep) * math.Pi / 180

	img.shape(func(dc *gg.Context) {
		if filled {
			dc.NewSubPath()
			dc.MoveTo(cx, cy)
			dc.DrawEllipticalArc(cx, cy, rx, ry, a1, a2)
			dc.ClosePath()
			return
		}
		dc.NewSubPath()
		dc.DrawEllipticalArc(cx, cy, rx, ry, a1, a2)
	}, filled)
	return img, nil
}

// DrawQuadraticCurve strokes a quadratic Bézier curve from (x1, y1) to
// (x2, y2) with control point (cx, cy).
func (img *Image) DrawQuadraticCurve(x1, y1, cx, cy, x2, y2 float64) (*Image, error) {
	img.shape(func(dc *gg.Context) {
		dc.NewSubPath()
		dc.MoveTo(x1, y1)
		dc.QuadraticTo(cx, cy, x2, y2)
	}, false)
	return img, nil
}

// DrawCubicCurve strokes a cubic Bézier curve from (x1, y1) to (x2, y2)
// with control points (cx1, cy1) and (cx2, cy2).
func (img *Image) DrawCubicCurve(x1, y1, cx1, cy1, cx2, cy2, x2, y2 float64) (*Image, error) {
	img.shape(func(dc *gg.Context) {
		dc.NewSubPath()
		dc.MoveTo(x1, y1)
		dc.CubicTo(cx1, cy1, cx2, cy2, x2, y2)
	}, false)
	return img, nil
}

// ClearRect paints a rectangle with the background color, replacing what
// was there. The drawing transparency does not apply.
func (img *Image) ClearRect(x, y, w, h float64) (*Image, error) {
	if err := checkSize("rectangle", w, h); err != nil {
		return img, err
	}
	bg := img.dc.Background
	if img.buf.layout != LayoutARGB {
		bg.A = 255
	}
	img.render(bg, true, func(dc *gg.Context) {
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
	})
	return img, nil
}
