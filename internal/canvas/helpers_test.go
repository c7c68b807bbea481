package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

// patternImage returns an image with a different color in each quadrant:
// red top-left, green top-right, blue bottom-left, white bottom-right.
func patternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			switch {
			case x < width/2 && y < height/2:
				c = red
			case x >= width/2 && y < height/2:
				c = green
			case x < width/2:
				c = blue
			default:
				c = white
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// newPattern wraps patternImage in an Image of the given layout.
func newPattern(t *testing.T, width, height int, layout Layout) *Image {
	t.Helper()
	img, err := FromImage(patternImage(width, height))
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if layout != LayoutRGB {
		img.buf = bufferFrom(layout, img.buf.pix)
	}
	return img
}

// newBlank is New with test failure handling.
func newBlank(t *testing.T, width, height int, layout, fill string) *Image {
	t.Helper()
	img, err := New(width, height, layout, fill)
	if err != nil {
		t.Fatalf("New(%d, %d, %q, %q) failed: %v", width, height, layout, fill, err)
	}
	return img
}

// pixels returns a copy of the raw samples of img.
func pixels(t *testing.T, img *Image) []uint8 {
	t.Helper()
	switch p := img.Image().(type) {
	case *image.NRGBA:
		return append([]uint8(nil), p.Pix...)
	case *image.Gray:
		return append([]uint8(nil), p.Pix...)
	default:
		t.Fatalf("unexpected buffer type %T", p)
		return nil
	}
}

func nrgbaAt(img *Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// near reports whether every channel of a and b differs by at most tol.
func near(a, b color.NRGBA, tol int) bool {
	d := func(x, y uint8) bool {
		diff := int(x) - int(y)
		return diff <= tol && diff >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

// writePNG encodes src into a file under t.TempDir and returns its path.
func writePNG(t *testing.T, name string, src image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
