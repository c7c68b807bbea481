package canvas

import "strings"

// PrimitiveKind identifies a drawable shape.
type PrimitiveKind int

const (
	KindPoint PrimitiveKind = iota
	KindLine
	KindPolyline
	KindPolygon
	KindRect
	KindRoundRect
	KindBeveledRect
	KindOval
	KindArc
	KindQuadCurve
	KindCubicCurve
	KindText
	KindClearRect
)

var kindNames = map[PrimitiveKind]string{
	KindPoint:       "point",
	KindLine:        "line",
	KindPolyline:    "polyline",
	KindPolygon:     "polygon",
	KindRect:        "rect",
	KindRoundRect:   "round_rect",
	KindBeveledRect: "beveled_rect",
	KindOval:        "oval",
	KindArc:         "arc",
	KindQuadCurve:   "quad_curve",
	KindCubicCurve:  "cubic_curve",
	KindText:        "text",
	KindClearRect:   "clear_rect",
}

func (k PrimitiveKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParsePrimitiveKind parses a primitive name such as "rect" or "cubic_curve".
// Hyphens are accepted in place of underscores.
func ParsePrimitiveKind(s string) (PrimitiveKind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, invalidArg("unknown primitive %q", s)
}

// Primitive is a shape description that Draw dispatches on Kind.
//
// Points holds the vertices for point, line, polyline and polygon, and the
// curve points in path order for curves: start, control(s), end. Boxed
// shapes (rect, round_rect, beveled_rect, oval, arc, clear_rect) use X, Y,
// Width and Height. Text is drawn with its baseline at X, Y.
type Primitive struct {
	Kind   PrimitiveKind
	Points []Point

	X, Y          float64
	Width, Height float64

	ArcWidth, ArcHeight float64
	StartAngle, Sweep   float64

	Filled bool
	Raised bool

	Text  string
	Style *TextStyle
}

// Draw paints p with the current drawing context.
func (img *Image) Draw(p Primitive) (*Image, error) {
	need := func(n int) error {
		if len(p.Points) != n {
			return invalidGeometry("%s needs %d points, got %d", p.Kind, n, len(p.Points))
		}
		return nil
	}

	switch p.Kind {
	case KindPoint:
		if err := need(1); err != nil {
			return img, err
		}
		return img.DrawPoint(p.Points[0].X, p.Points[0].Y)
	case KindLine:
		if err := need(2); err != nil {
			return img, err
		}
		a, b := p.Points[0], p.Points[1]
		return img.DrawLine(a.X, a.Y, b.X, b.Y)
	case KindPolyline:
		return img.DrawLines(p.Points, false, false)
	case KindPolygon:
		return img.DrawLines(p.Points, true, p.Filled)
	case KindRect:
		return img.DrawRect(p.X, p.Y, p.Width, p.Height, p.Filled)
	case KindRoundRect:
		return img.DrawRoundRect(p.X, p.Y, p.Width, p.Height, p.ArcWidth, p.ArcHeight, p.Filled)
	case KindBeveledRect:
		return img.DrawBeveledRect(p.X, p.Y, p.Width, p.Height, p.Raised, p.Filled)
	case KindOval:
		return img.DrawOval(p.X, p.Y, p.Width, p.Height, p.Filled)
	case KindArc:
		return img.DrawArc(p.X, p.Y, p.Width, p.Height, p.StartAngle, p.Sweep, p.Filled)
	case KindQuadCurve:
		if err := need(3); err != nil {
			return img, err
		}
		s, c, e := p.Points[0], p.Points[1], p.Points[2]
		return img.DrawQuadraticCurve(s.X, s.Y, c.X, c.Y, e.X, e.Y)
	case KindCubicCurve:
		if err := need(4); err != nil {
			return img, err
		}
		s, c1, c2, e := p.Points[0], p.Points[1], p.Points[2], p.Points[3]
		return img.DrawCubicCurve(s.X, s.Y, c1.X, c1.Y, c2.X, c2.Y, e.X, e.Y)
	case KindText:
		return img.DrawText(p.Text, p.X, p.Y, p.Style)
	case KindClearRect:
		return img.ClearRect(p.X, p.Y, p.Width, p.Height)
	default:
		return img, invalidArg("unknown primitive kind %d", p.Kind)
	}
}
