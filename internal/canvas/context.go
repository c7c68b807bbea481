package canvas

import (
	"image/color"
	"math"
	"strings"
)

// LineCap is the decoration applied to the ends of open strokes.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the decoration applied where stroke segments meet.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

var capNames = [...]string{CapButt: "butt", CapRound: "round", CapSquare: "square"}

func (c LineCap) String() string {
	if c < 0 || int(c) >= len(capNames) {
		return "unknown"
	}
	return capNames[c]
}

var joinNames = [...]string{JoinMiter: "miter", JoinRound: "round", JoinBevel: "bevel"}

func (j LineJoin) String() string {
	if j < 0 || int(j) >= len(joinNames) {
		return "unknown"
	}
	return joinNames[j]
}

// ParseLineCap parses "butt", "round" or "square" (case-insensitive).
func ParseLineCap(s string) (LineCap, error) {
	switch strings.ToLower(s) {
	case "butt":
		return CapButt, nil
	case "round":
		return CapRound, nil
	case "square":
		return CapSquare, nil
	default:
		return 0, invalidArg("unknown end cap %q", s)
	}
}

// ParseLineJoin parses "miter", "round" or "bevel" (case-insensitive).
func ParseLineJoin(s string) (LineJoin, error) {
	switch strings.ToLower(s) {
	case "miter", "mitre":
		return JoinMiter, nil
	case "round":
		return JoinRound, nil
	case "bevel":
		return JoinBevel, nil
	default:
		return 0, invalidArg("unknown line join %q", s)
	}
}

// Stroke describes how outlines are drawn.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64 // nil means a solid line
	DashPhase  float64
}

// DefaultStroke is a solid 1 pixel line with round caps and bevel joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1,
		Cap:        CapRound,
		Join:       JoinBevel,
		MiterLimit: 1,
	}
}

// StrokeSpec is a partial stroke update. Nil pointers, empty strings and a
// nil Dash keep the current value; an empty non-nil Dash clears dashing.
type StrokeSpec struct {
	Width      *float64
	Cap        string
	Join       string
	MiterLimit *float64
	Dash       []float64
	DashPhase  *float64
}

// DrawingContext is the style state that primitive draws read.
type DrawingContext struct {
	Color        color.NRGBA
	Background   color.NRGBA
	Stroke       Stroke
	Transparency float64 // percent, 0 = opaque, 100 = invisible
	Antialias    bool

	// Axis maps primitive coordinates to buffer coordinates. It is
	// independent of the buffer geometry and accumulates until a
	// dimension-changing operation resets it.
	Axis Matrix
}

// DefaultContext returns the context every new Image starts with.
func DefaultContext() DrawingContext {
	return DrawingContext{
		Color:      palette["black"],
		Background: palette["white"],
		Stroke:     DefaultStroke(),
		Antialias:  true,
		Axis:       Identity(),
	}
}

func (dc DrawingContext) clone() DrawingContext {
	if dc.Stroke.Dash != nil {
		dc.Stroke.Dash = append([]float64(nil), dc.Stroke.Dash...)
	}
	return dc
}

// opacity is the alpha multiplier derived from Transparency.
func (dc DrawingContext) opacity() float64 {
	return 1 - dc.Transparency/100
}

// Context returns a copy of the current drawing context.
func (img *Image) Context() DrawingContext {
	return img.dc.clone()
}

// SetColor sets the drawing color. Unresolvable specs fail with
// ErrInvalidColor and leave the current color unchanged.
func (img *Image) SetColor(spec string) (*Image, error) {
	c, err := ParseColor(spec)
	if err != nil {
		return img, err
	}
	img.dc.Color = c
	return img, nil
}

// SetBackgroundColor sets the color ClearRect paints with.
func (img *Image) SetBackgroundColor(spec string) (*Image, error) {
	c, err := ParseColor(spec)
	if err != nil {
		return img, err
	}
	img.dc.Background = c
	return img, nil
}

// MaxStrokeWidth is the widest stroke SetStroke accepts.
const MaxStrokeWidth = 4096

// SetStroke updates the attributes present in spec. The whole update is
// validated before anything is applied.
func (img *Image) SetStroke(spec StrokeSpec) (*Image, error) {
	s := img.dc.Stroke

	if spec.Width != nil {
		if *spec.Width < 0 || *spec.Width > MaxStrokeWidth || math.IsNaN(*spec.Width) {
			return img, invalidArg("stroke width must be between 0 and %d, got %v", MaxStrokeWidth, *spec.Width)
		}
		s.Width = *spec.Width
	}
	if spec.Cap != "" {
		c, err := ParseLineCap(spec.Cap)
		if err != nil {
			return img, err
		}
		s.Cap = c
	}
	if spec.Join != "" {
		j, err := ParseLineJoin(spec.Join)
		if err != nil {
			return img, err
		}
		s.Join = j
	}
	if spec.MiterLimit != nil {
		if *spec.MiterLimit < 1 {
			return img, invalidArg("miter limit must be >= 1, got %v", *spec.MiterLimit)
		}
		s.MiterLimit = *spec.MiterLimit
	}
	if spec.Dash != nil {
		if len(spec.Dash) == 0 {
			s.Dash = nil
		} else {
			var total float64
			for _, d := range spec.Dash {
				if d < 0 {
					return img, invalidArg("dash lengths must be >= 0, got %v", d)
				}
				total += d
			}
			if total == 0 {
				return img, invalidArg("dash pattern must not be all zeros")
			}
			s.Dash = append([]float64(nil), spec.Dash...)
		}
	}
	if spec.DashPhase != nil {
		s.DashPhase = *spec.DashPhase
	}

	img.dc.Stroke = s
	return img, nil
}

// SetTransparency sets the drawing transparency in percent: 0 draws fully
// opaque, 100 draws nothing.
func (img *Image) SetTransparency(percent float64) (*Image, error) {
	if percent < 0 || percent > 100 || math.IsNaN(percent) {
		return img, invalidArg("transparency must be within 0-100, got %v", percent)
	}
	img.dc.Transparency = percent
	return img, nil
}

// SetAntialiasing turns edge smoothing of primitive draws on or off.
func (img *Image) SetAntialiasing(on bool) *Image {
	img.dc.Antialias = on
	return img
}

// TranslateAxis moves the drawing axis origin by (dx, dy).
func (img *Image) TranslateAxis(dx, dy float64) *Image {
	img.dc.Axis = img.dc.Axis.Multiply(Translation(dx, dy))
	return img
}

// RotateAxis rotates the drawing axis clockwise by degrees around the pivot
// (px, py), given in current axis coordinates.
func (img *Image) RotateAxis(degrees, px, py float64) *Image {
	r := Translation(px, py).
		Multiply(Rotation(degrees * math.Pi / 180)).
		Multiply(Translation(-px, -py))
	img.dc.Axis = img.dc.Axis.Multiply(r)
	return img
}

// ShearAxis shears the drawing axis: x' = x + shx*y, y' = shy*x + y.
func (img *Image) ShearAxis(shx, shy float64) *Image {
	img.dc.Axis = img.dc.Axis.Multiply(Shearing(shx, shy))
	return img
}

// ResetAxis restores the identity drawing axis.
func (img *Image) ResetAxis() *Image {
	img.dc.Axis = Identity()
	return img
}
