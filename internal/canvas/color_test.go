package canvas

import (
	"errors"
	"image/color"
	"sort"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		spec string
		want color.NRGBA
	}{
		{"red", red},
		{"  White ", white},
		{"GREY", color.NRGBA{128, 128, 128, 255}},
		{"darkgrey", color.NRGBA{64, 64, 64, 255}},
		{"orange", color.NRGBA{255, 200, 0, 255}},
		{"#f00", red},
		{"00ff00", green},
		{"#0000FF", blue},
		{"#FF000080", color.NRGBA{255, 0, 0, 128}},
		{"10, 20, 30", color.NRGBA{10, 20, 30, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseColor(tt.spec)
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, spec := range []string{"", "chartreuse", "#12", "#zzzzzz", "1,2", "300,0,0", "a,b,c"} {
		if _, err := ParseColor(spec); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", spec, err)
		}
	}
}

func TestColorNames(t *testing.T) {
	names := ColorNames()
	if len(names) != 13 {
		t.Fatalf("got %d color names, want 13", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("color names not sorted: %v", names)
	}
	for _, name := range names {
		if _, err := ParseColor(name); err != nil {
			t.Errorf("palette color %q does not parse: %v", name, err)
		}
	}
}

func TestSetColor_InvalidKeepsPrevious(t *testing.T) {
	img := newBlank(t, 4, 4, "rgb", "white")
	if _, err := img.SetColor("red"); err != nil {
		t.Fatal(err)
	}
	if _, err := img.SetColor("not-a-color"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("SetColor error = %v, want ErrInvalidColor", err)
	}
	if got := img.Context().Color; got != red {
		t.Errorf("color = %v after a rejected update, want red", got)
	}

	if _, err := img.SetBackgroundColor("nope"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("SetBackgroundColor error = %v, want ErrInvalidColor", err)
	}
	if got := img.Context().Background; got != white {
		t.Errorf("background = %v, want the default white", got)
	}
}

func TestSampleColor(t *testing.T) {
	img := newBlank(t, 10, 10, "rgb", "#FF8040")

	result, err := img.SampleColor(5, 5)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGBA != (RGBAColor{255, 128, 64, 255}) {
		t.Errorf("RGBA: got %+v, want (255,128,64,255)", result.RGBA)
	}
	if result.HSL.H < 19 || result.HSL.H > 21 {
		t.Errorf("HSL hue: got %d, want ~20", result.HSL.H)
	}

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := img.SampleColor(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SampleColor(%d,%d) error = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}
}

func TestShade(t *testing.T) {
	base := color.NRGBA{100, 120, 140, 200}
	light, dark := shade(base, 1.4), shade(base, 0.7)
	if light.R <= base.R || dark.R >= base.R {
		t.Errorf("shade(1.4) = %v, shade(0.7) = %v around %v", light, dark, base)
	}
	if light.A != 200 || dark.A != 200 {
		t.Error("shade must keep alpha")
	}
}
