package canvas

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// DefaultFontSize is the text size in pixels when none is given.
	DefaultFontSize = 12

	// MaxFontSize is the largest text size DrawText accepts.
	MaxFontSize = 2048

	// Above this size the glyph mask cache holds a single entry.
	largeFontSize = 64
)

// TextStyle selects the font used by DrawText.
type TextStyle struct {
	// Font is a family name. Monospaced families ("monospaced", "courier",
	// "mono" ...) map to Go Mono; everything else maps to Go Regular.
	Font          string  `json:"font,omitempty"`
	Size          float64 `json:"size,omitempty"`
	Bold          bool    `json:"bold,omitempty"`
	Italic        bool    `json:"italic,omitempty"`
	Underline     bool    `json:"underline,omitempty"`
	Strikethrough bool    `json:"strikethrough,omitempty"`
}

var monoFamilies = map[string]bool{
	"mono":        true,
	"monospace":   true,
	"monospaced":  true,
	"courier":     true,
	"courier new": true,
	"consolas":    true,
}

var fontSet struct {
	once  sync.Once
	fonts map[string]*truetype.Font
	err   error
}

func loadFonts() (map[string]*truetype.Font, error) {
	fontSet.once.Do(func() {
		sources := map[string][]byte{
			"sans":             goregular.TTF,
			"sans-bold":        gobold.TTF,
			"sans-italic":      goitalic.TTF,
			"sans-bold-italic": gobolditalic.TTF,
			"mono":             gomono.TTF,
			"mono-bold":        gomonobold.TTF,
			"mono-italic":      gomonoitalic.TTF,
			"mono-bold-italic": gomonobolditalic.TTF,
		}
		fontSet.fonts = make(map[string]*truetype.Font, len(sources))
		for key, ttf := range sources {
			f, err := truetype.Parse(ttf)
			if err != nil {
				fontSet.err = fmt.Errorf("failed to parse font %s: %w", key, err)
				return
			}
			fontSet.fonts[key] = f
		}
	})
	return fontSet.fonts, fontSet.err
}

// fontKey names the embedded font for a style.
func fontKey(style TextStyle) string {
	key := "sans"
	if monoFamilies[strings.ToLower(strings.TrimSpace(style.Font))] {
		key = "mono"
	}
	if style.Bold {
		key += "-bold"
	}
	if style.Italic {
		key += "-italic"
	}
	return key
}

func newFace(style TextStyle) (font.Face, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	opts := &truetype.Options{
		Size:    style.Size,
		Hinting: font.HintingNone,
	}
	// The face allocates one glyph-sized mask per cache entry up front.
	if style.Size > largeFontSize {
		opts.GlyphCacheEntries = 1
	}
	return truetype.NewFace(fonts[fontKey(style)], opts), nil
}

// DrawText draws s with its baseline starting at (x, y). A nil style uses
// the default sans-serif font at DefaultFontSize.
func (img *Image) DrawText(s string, x, y float64, style *TextStyle) (*Image, error) {
	var st TextStyle
	if style != nil {
		st = *style
	}
	if st.Size < 0 || st.Size > MaxFontSize || math.IsNaN(st.Size) {
		return img, invalidArg("font size must be between 0 and %d, got %v", MaxFontSize, st.Size)
	}
	if st.Size == 0 {
		st.Size = DefaultFontSize
	}
	if s == "" {
		return img, nil
	}

	face, err := newFace(st)
	if err != nil {
		return img, err
	}
	defer face.Close()

	img.render(img.dc.Color, false, func(dc *gg.Context) {
		dc.SetFontFace(face)
		dc.DrawString(s, x, y)

		if !st.Underline && !st.Strikethrough {
			return
		}
		w, _ := dc.MeasureString(s)
		dc.SetLineWidth(math.Max(1, st.Size/14))
		dc.SetLineCap(gg.LineCapButt)
		dc.SetDash()
		if st.Underline {
			uy := y + st.Size*0.12
			dc.DrawLine(x, uy, x+w, uy)
			dc.Stroke()
		}
		if st.Strikethrough {
			sy := y - st.Size*0.3
			dc.DrawLine(x, sy, x+w, sy)
			dc.Stroke()
		}
	})
	return img, nil
}
