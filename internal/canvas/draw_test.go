package canvas

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// redCanvas returns a white RGB canvas with red as the drawing color.
func redCanvas(t *testing.T, width, height int) *Image {
	t.Helper()
	img := newBlank(t, width, height, "rgb", "white")
	if _, err := img.SetColor("red"); err != nil {
		t.Fatal(err)
	}
	return img
}

func setWidth(t *testing.T, img *Image, w float64) {
	t.Helper()
	if _, err := img.SetStroke(StrokeSpec{Width: &w}); err != nil {
		t.Fatal(err)
	}
}

func TestDrawRect(t *testing.T) {
	t.Run("filled", func(t *testing.T) {
		img := redCanvas(t, 20, 20)
		if _, err := img.DrawRect(5, 5, 10, 10, true); err != nil {
			t.Fatalf("DrawRect failed: %v", err)
		}
		if got := nrgbaAt(img, 10, 10); got != red {
			t.Errorf("inside = %v, want red", got)
		}
		if got := nrgbaAt(img, 2, 2); got != white {
			t.Errorf("outside = %v, want white", got)
		}
	})

	t.Run("outline", func(t *testing.T) {
		img := redCanvas(t, 20, 20)
		setWidth(t, img, 2)
		if _, err := img.DrawRect(5, 5, 10, 10, false); err != nil {
			t.Fatalf("DrawRect failed: %v", err)
		}
		if got := nrgbaAt(img, 10, 10); got != white {
			t.Errorf("center = %v, want white", got)
		}
		if got := nrgbaAt(img, 5, 10); got != red {
			t.Errorf("left edge = %v, want red", got)
		}
	})
}

func TestDraw_NegativeSizeLeavesBufferUntouched(t *testing.T) {
	tests := []struct {
		name string
		draw func(img *Image) (*Image, error)
	}{
		{"rect", func(img *Image) (*Image, error) { return img.DrawRect(0, 0, -1, 5, true) }},
		{"round rect", func(img *Image) (*Image, error) { return img.DrawRoundRect(0, 0, 5, 5, -2, 2, true) }},
		{"beveled rect", func(img *Image) (*Image, error) { return img.DrawBeveledRect(0, 0, 5, -5, true, true) }},
		{"oval", func(img *Image) (*Image, error) { return img.DrawOval(0, 0, -3, -3, false) }},
		{"arc", func(img *Image) (*Image, error) { return img.DrawArc(0, 0, -10, 10, 0, 90, true) }},
		{"clear rect", func(img *Image) (*Image, error) { return img.ClearRect(0, 0, 5, -1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := redCanvas(t, 10, 10)
			before := pixels(t, img)
			if _, err := tt.draw(img); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("error = %v, want ErrInvalidGeometry", err)
			}
			if diff := cmp.Diff(before, pixels(t, img)); diff != "" {
				t.Errorf("buffer changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDraw_OutsideBufferIsClipped(t *testing.T) {
	img := redCanvas(t, 10, 10)
	if _, err := img.DrawRect(-50, -50, 55, 55, true); err != nil {
		t.Fatalf("DrawRect failed: %v", err)
	}
	if _, err := img.DrawLine(-100, 100, 200, 100); err != nil {
		t.Fatalf("DrawLine failed: %v", err)
	}
	if got := nrgbaAt(img, 2, 2); got != red {
		t.Errorf("clipped rect pixel = %v, want red", got)
	}
	if got := nrgbaAt(img, 8, 8); got != white {
		t.Errorf("pixel outside rect = %v, want white", got)
	}
}

func TestSetTransparency(t *testing.T) {
	img := redCanvas(t, 10, 10)
	if _, err := img.SetTransparency(50); err != nil {
		t.Fatal(err)
	}
	img.DrawRect(0, 0, 10, 10, true)
	if got := nrgbaAt(img, 5, 5); !near(got, color.NRGBA{255, 128, 128, 255}, 2) {
		t.Errorf("half transparent red on white = %v, want ~(255,128,128)", got)
	}

	img = redCanvas(t, 10, 10)
	img.SetTransparency(100)
	img.DrawRect(0, 0, 10, 10, true)
	if got := nrgbaAt(img, 5, 5); got != white {
		t.Errorf("fully transparent draw changed pixel to %v", got)
	}

	for _, bad := range []float64{-1, 100.5} {
		if _, err := img.SetTransparency(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("SetTransparency(%v) error = %v, want ErrInvalidArgument", bad, err)
		}
	}
	if img.Context().Transparency != 100 {
		t.Errorf("transparency = %v after rejected updates, want 100", img.Context().Transparency)
	}
}

func TestSetAntialiasing(t *testing.T) {
	img := redCanvas(t, 40, 40)
	img.SetAntialiasing(false)
	if _, err := img.DrawOval(3, 3, 33, 29, true); err != nil {
		t.Fatal(err)
	}
	sawRed := false
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			switch got := nrgbaAt(img, x, y); got {
			case red:
				sawRed = true
			case white:
			default:
				t.Fatalf("pixel (%d,%d) = %v, want only red or white without antialiasing", x, y, got)
			}
		}
	}
	if !sawRed {
		t.Error("oval was not drawn")
	}
}

func TestClearRect(t *testing.T) {
	img := redCanvas(t, 10, 10)
	img.DrawRect(0, 0, 10, 10, true)
	img.SetTransparency(50)
	if _, err := img.SetBackgroundColor("blue"); err != nil {
		t.Fatal(err)
	}
	if _, err := img.ClearRect(0, 0, 5, 5); err != nil {
		t.Fatalf("ClearRect failed: %v", err)
	}
	if got := nrgbaAt(img, 2, 2); got != blue {
		t.Errorf("cleared pixel = %v, want blue", got)
	}
	if got := nrgbaAt(img, 7, 7); got != red {
		t.Errorf("pixel outside cleared area = %v, want red", got)
	}
}

func TestClearRect_ARGBKeepsBackgroundAlpha(t *testing.T) {
	img := newBlank(t, 10, 10, "argb", "red")
	img.SetBackgroundColor("#00000000")
	img.ClearRect(0, 0, 10, 10)
	if got := nrgbaAt(img, 5, 5); got.A != 0 {
		t.Errorf("alpha after clearing with a transparent background = %d, want 0", got.A)
	}
}

func TestDrawingAxis(t *testing.T) {
	t.Run("translate", func(t *testing.T) {
		img := redCanvas(t, 30, 30)
		img.TranslateAxis(10, 10)
		img.DrawRect(0, 0, 5, 5, true)
		if got := nrgbaAt(img, 12, 12); got != red {
			t.Errorf("translated pixel = %v, want red", got)
		}
		if got := nrgbaAt(img, 2, 2); got != white {
			t.Errorf("origin pixel = %v, want white", got)
		}
	})

	t.Run("translate then rotate compose", func(t *testing.T) {
		img := redCanvas(t, 30, 30)
		img.TranslateAxis(20, 0)
		img.RotateAxis(90, 0, 0)
		// (x, y) maps to (20-y, x): the 5x10 rect lands on x 10-20, y 0-5.
		img.DrawRect(0, 0, 5, 10, true)
		if got := nrgbaAt(img, 15, 2); got != red {
			t.Errorf("rotated pixel = %v, want red", got)
		}
		if got := nrgbaAt(img, 2, 7); got != white {
			t.Errorf("unrotated position = %v, want white", got)
		}
	})

	t.Run("rotate around pivot", func(t *testing.T) {
		img := redCanvas(t, 30, 30)
		img.RotateAxis(180, 10, 10)
		img.DrawRect(0, 0, 5, 5, true)
		if got := nrgbaAt(img, 17, 17); got != red {
			t.Errorf("rotated pixel = %v, want red", got)
		}
		if got := nrgbaAt(img, 2, 2); got != white {
			t.Errorf("original position = %v, want white", got)
		}
	})

	t.Run("does not move drawn pixels", func(t *testing.T) {
		img := redCanvas(t, 20, 20)
		img.DrawRect(0, 0, 5, 5, true)
		before := pixels(t, img)
		img.TranslateAxis(7, 7).ShearAxis(0.5, 0).RotateAxis(30, 3, 3)
		if diff := cmp.Diff(before, pixels(t, img)); diff != "" {
			t.Errorf("axis change modified pixels (-want +got):\n%s", diff)
		}
	})

	t.Run("reset by dimension change", func(t *testing.T) {
		img := redCanvas(t, 20, 20)
		img.TranslateAxis(5, 5)
		if _, err := img.Resize(10, 10, "", 0); err != nil {
			t.Fatal(err)
		}
		if !img.Context().Axis.IsIdentity() {
			t.Errorf("axis = %+v after resize, want identity", img.Context().Axis)
		}
	})

	t.Run("singular axis draws nothing", func(t *testing.T) {
		img := redCanvas(t, 10, 10)
		img.ShearAxis(1, 1)
		before := pixels(t, img)
		img.DrawRect(0, 0, 10, 10, true)
		if diff := cmp.Diff(before, pixels(t, img)); diff != "" {
			t.Errorf("draw through a singular axis changed pixels (-want +got):\n%s", diff)
		}
	})
}

func TestDrawLine(t *testing.T) {
	img := redCanvas(t, 20, 20)
	setWidth(t, img, 3)
	if _, err := img.DrawLine(0, 10, 20, 10); err != nil {
		t.Fatal(err)
	}
	if got := nrgbaAt(img, 10, 10); got != red {
		t.Errorf("pixel on line = %v, want red", got)
	}
	if got := nrgbaAt(img, 10, 3); got != white {
		t.Errorf("pixel off line = %v, want white", got)
	}
}

func TestDrawLines(t *testing.T) {
	triangle := []Point{{0, 0}, {20, 0}, {0, 20}}

	img := redCanvas(t, 20, 20)
	if _, err := img.DrawLines(triangle, true, true); err != nil {
		t.Fatal(err)
	}
	if got := nrgbaAt(img, 3, 3); got != red {
		t.Errorf("inside polygon = %v, want red", got)
	}
	if got := nrgbaAt(img, 17, 17); got != white {
		t.Errorf("outside polygon = %v, want white", got)
	}

	if _, err := img.DrawLines([]Point{{1, 1}}, false, false); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("single point polyline error = %v, want ErrInvalidGeometry", err)
	}
}

func TestDrawArc_Pie(t *testing.T) {
	img := redCanvas(t, 40, 40)
	// 0 degrees is 3 o'clock and positive sweeps run counter-clockwise, so
	// this covers the top-right quadrant.
	if _, err := img.DrawArc(0, 0, 40, 40, 0, 90, true); err != nil {
		t.Fatal(err)
	}
	if got := nrgbaAt(img, 30, 10); got != red {
		t.Errorf("top-right = %v, want red", got)
	}
	for _, p := range []Point{{10, 10}, {10, 30}, {30, 30}} {
		if got := nrgbaAt(img, int(p.X), int(p.Y)); got != white {
			t.Errorf("pixel %v = %v, want white", p, got)
		}
	}
}

func TestDrawOvalAndRoundRect(t *testing.T) {
	img := redCanvas(t, 20, 20)
	img.DrawOval(0, 0, 20, 20, true)
	if got := nrgbaAt(img, 10, 10); got != red {
		t.Errorf("oval center = %v, want red", got)
	}
	if got := nrgbaAt(img, 0, 0); got != white {
		t.Errorf("oval corner = %v, want white", got)
	}

	img = redCanvas(t, 20, 20)
	img.DrawRoundRect(0, 0, 20, 20, 10, 10, true)
	if got := nrgbaAt(img, 10, 10); got != red {
		t.Errorf("round rect center = %v, want red", got)
	}
	if got := nrgbaAt(img, 10, 0); got != red {
		t.Errorf("round rect top edge = %v, want red", got)
	}
	if got := nrgbaAt(img, 0, 0); got != white {
		t.Errorf("round rect corner = %v, want white", got)
	}
}

func TestDrawBeveledRect(t *testing.T) {
	img := newBlank(t, 20, 20, "rgb", "white")
	img.SetColor("gray")
	setWidth(t, img, 2)
	if _, err := img.DrawBeveledRect(2, 2, 16, 16, true, true); err != nil {
		t.Fatal(err)
	}
	top, bottom := nrgbaAt(img, 10, 1), nrgbaAt(img, 10, 18)
	if top.R <= bottom.R {
		t.Errorf("raised: top edge %v should be lighter than bottom edge %v", top, bottom)
	}
	if got := nrgbaAt(img, 10, 10); got != (color.NRGBA{128, 128, 128, 255}) {
		t.Errorf("raised fill = %v, want gray", got)
	}

	img = newBlank(t, 20, 20, "rgb", "white")
	img.SetColor("gray")
	setWidth(t, img, 2)
	img.DrawBeveledRect(2, 2, 16, 16, false, false)
	top, bottom = nrgbaAt(img, 10, 1), nrgbaAt(img, 10, 18)
	if top.R >= bottom.R {
		t.Errorf("depressed: top edge %v should be darker than bottom edge %v", top, bottom)
	}
}

func TestDrawCurves(t *testing.T) {
	img := redCanvas(t, 20, 20)
	setWidth(t, img, 3)
	img.DrawQuadraticCurve(0, 5, 10, 5, 20, 5)
	img.DrawCubicCurve(0, 15, 5, 15, 15, 15, 20, 15)
	if got := nrgbaAt(img, 10, 5); got != red {
		t.Errorf("quadratic curve pixel = %v, want red", got)
	}
	if got := nrgbaAt(img, 10, 15); got != red {
		t.Errorf("cubic curve pixel = %v, want red", got)
	}
	if got := nrgbaAt(img, 10, 10); got != white {
		t.Errorf("pixel between curves = %v, want white", got)
	}
}

func TestDrawPoint(t *testing.T) {
	img := redCanvas(t, 10, 10)
	img.DrawPoint(4, 4)
	if got := nrgbaAt(img, 4, 4); got != red {
		t.Errorf("point = %v, want red", got)
	}
	if got := nrgbaAt(img, 6, 6); got != white {
		t.Errorf("neighbor = %v, want white", got)
	}
}

func TestDrawText(t *testing.T) {
	countInk := func(img *Image) int {
		n := 0
		for y := 0; y < img.Height(); y++ {
			for x := 0; x < img.Width(); x++ {
				if nrgbaAt(img, x, y) != white {
					n++
				}
			}
		}
		return n
	}

	styles := []*TextStyle{
		nil,
		{Font: "serif", Size: 24, Bold: true},
		{Font: "Courier", Size: 18, Italic: true, Underline: true, Strikethrough: true},
	}
	for _, style := range styles {
		img := redCanvas(t, 120, 40)
		if _, err := img.DrawText("Hello", 5, 30, style); err != nil {
			t.Fatalf("DrawText(%+v) failed: %v", style, err)
		}
		if countInk(img) == 0 {
			t.Errorf("DrawText(%+v) drew nothing", style)
		}
	}

	big := redCanvas(t, 300, 300)
	if _, err := big.DrawText("W", 10, 250, &TextStyle{Size: 240}); err != nil {
		t.Fatalf("large DrawText failed: %v", err)
	}
	if countInk(big) < 1000 {
		t.Errorf("large DrawText drew %d pixels", countInk(big))
	}

	img := redCanvas(t, 20, 20)
	if _, err := img.DrawText("x", 0, 10, &TextStyle{Size: -4}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative size error = %v, want ErrInvalidArgument", err)
	}
	for _, size := range []float64{MaxFontSize + 1, 1e4, math.Inf(1), math.NaN()} {
		if _, err := img.DrawText("x", 0, 10, &TextStyle{Size: size}); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("size %v error = %v, want ErrInvalidArgument", size, err)
		}
	}
	if _, err := img.DrawText("", 0, 10, nil); err != nil {
		t.Errorf("empty text failed: %v", err)
	}
}

func TestDraw_Primitive(t *testing.T) {
	direct := redCanvas(t, 30, 30)
	direct.DrawRect(3, 4, 10, 12, true)
	direct.DrawCubicCurve(0, 0, 10, 30, 20, 0, 30, 30)

	viaDraw := redCanvas(t, 30, 30)
	prims := []Primitive{
		{Kind: KindRect, X: 3, Y: 4, Width: 10, Height: 12, Filled: true},
		{Kind: KindCubicCurve, Points: []Point{{0, 0}, {10, 30}, {20, 0}, {30, 30}}},
	}
	for _, p := range prims {
		if _, err := viaDraw.Draw(p); err != nil {
			t.Fatalf("Draw(%v) failed: %v", p.Kind, err)
		}
	}
	if diff := cmp.Diff(pixels(t, direct), pixels(t, viaDraw)); diff != "" {
		t.Errorf("Draw differs from direct calls (-want +got):\n%s", diff)
	}

	if _, err := viaDraw.Draw(Primitive{Kind: KindLine, Points: []Point{{1, 1}}}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("line with one point error = %v, want ErrInvalidGeometry", err)
	}
	if _, err := viaDraw.Draw(Primitive{Kind: PrimitiveKind(99)}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown kind error = %v, want ErrInvalidArgument", err)
	}
}

func TestParsePrimitiveKind(t *testing.T) {
	tests := map[string]PrimitiveKind{
		"rect":         KindRect,
		"Round_Rect":   KindRoundRect,
		"cubic-curve":  KindCubicCurve,
		"clear_rect":   KindClearRect,
		"beveled_rect": KindBeveledRect,
	}
	for in, want := range tests {
		got, err := ParsePrimitiveKind(in)
		if err != nil || got != want {
			t.Errorf("ParsePrimitiveKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParsePrimitiveKind("hexagon"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown primitive error = %v, want ErrInvalidArgument", err)
	}
}
