package canvas

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-canvas-mcp/internal/storage"
)

// Image is a mutable raster with a persistent drawing context.
//
// The *Image handle is stable: operations that change the dimensions build a
// new pixel buffer and swap it in, so references held by callers stay valid.
// An Image is not safe for concurrent mutation.
type Image struct {
	buf    *buffer
	dc     DrawingContext
	source string
}

// Option configures image construction.
type Option func(*options)

type options struct {
	source string
	store  storage.Store
}

// WithSource records the origin path or URL of a decoded payload. It becomes
// the default write target and format hint.
func WithSource(location string) Option {
	return func(o *options) { o.source = location }
}

// WithStore reads sources through s instead of the default local store.
func WithStore(s storage.Store) Option {
	return func(o *options) { o.store = s }
}

func buildOptions(opts []Option) options {
	o := options{store: storage.Default()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// New allocates a blank width x height image of the given channel layout
// filled with the named color.
func New(width, height int, layout, fill string) (*Image, error) {
	l, err := ParseLayout(layout)
	if err != nil {
		return nil, &LoadError{Format: layout, Err: err}
	}
	if fill == "" {
		fill = "black"
	}
	c, err := ParseColor(fill)
	if err != nil {
		return nil, &LoadError{Format: l.String(), Err: err}
	}
	buf, err := newBuffer(l, width, height, c)
	if err != nil {
		return nil, &LoadError{Format: l.String(), Err: err}
	}
	return &Image{buf: buf, dc: DefaultContext()}, nil
}

// FromImage wraps a copy of src. The layout follows src's color model.
func FromImage(src image.Image) (*Image, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, &LoadError{Err: errors.New("empty image")}
	}
	return &Image{buf: bufferFrom(layoutOf(src), src), dc: DefaultContext()}, nil
}

// Load reads and decodes the image at a file path or http(s) URL. The
// location becomes the image's source descriptor.
func Load(ctx context.Context, location string, opts ...Option) (*Image, error) {
	o := buildOptions(opts)
	data, err := o.store.Read(ctx, location)
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}
	img, err := decode(data, location)
	if err != nil {
		return nil, err
	}
	img.source = location
	return img, nil
}

// Decode builds an image from an encoded payload. No source descriptor is
// set unless WithSource is given.
func Decode(data []byte, opts ...Option) (*Image, error) {
	o := buildOptions(opts)
	img, err := decode(data, o.source)
	if err != nil {
		return nil, err
	}
	img.source = o.source
	return img, nil
}

// DecodeBase64 builds an image from base64 text. A "data:<mime>;base64,"
// prefix is accepted and ignored.
func DecodeBase64(text string, opts ...Option) (*Image, error) {
	payload := strings.TrimSpace(text)
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 {
			return nil, &LoadError{Err: errors.New("malformed data URI")}
		}
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &LoadError{Format: "base64", Err: err}
	}
	return Decode(data, opts...)
}

func decode(data []byte, source string) (*Image, error) {
	if len(data) == 0 {
		return nil, &LoadError{Source: source, Err: errors.New("empty payload")}
	}
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &LoadError{Source: source, Format: name, Err: err}
	}
	if src.Bounds().Empty() {
		return nil, &LoadError{Source: source, Format: name, Err: errors.New("image has no pixels")}
	}
	return &Image{buf: bufferFrom(layoutOf(src), src), dc: DefaultContext()}, nil
}

// Clone returns a deep copy of the pixels and drawing context. The copy has
// no source descriptor: it is detached from the original's on-disk identity
// and needs an explicit path to be written.
func (img *Image) Clone() *Image {
	return &Image{buf: img.buf.clone(), dc: img.dc.clone()}
}

// Width returns the width in pixels.
func (img *Image) Width() int { return img.buf.width() }

// Height returns the height in pixels.
func (img *Image) Height() int { return img.buf.height() }

// Layout returns the channel layout of the current buffer.
func (img *Image) Layout() Layout { return img.buf.layout }

// Source returns the origin path or URL, or "" if none was set.
func (img *Image) Source() string { return img.source }

// Image returns the current pixels. The returned image aliases the buffer
// and must be treated as read-only; it is invalidated by the next
// dimension-changing operation.
func (img *Image) Image() image.Image { return img.buf.pix }

// At returns the color of pixel (x, y).
func (img *Image) At(x, y int) color.Color { return img.buf.pix.At(x, y) }

// replace swaps in a new buffer after a dimension-changing operation and
// resets the drawing axis.
func (img *Image) replace(b *buffer) *Image {
	img.buf = b
	img.dc.Axis = Identity()
	return img
}

// Info contains metadata about an image.
type Info struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Layout   string `json:"layout"`
	HasAlpha bool   `json:"has_alpha"`
	Source   string `json:"source,omitempty"`

	// Format is the format Encode would use when called without one.
	Format string `json:"format"`
}

// Info returns the image's dimensions, layout and default format.
func (img *Image) Info() Info {
	return Info{
		Width:    img.Width(),
		Height:   img.Height(),
		Layout:   img.buf.layout.String(),
		HasAlpha: img.buf.layout == LayoutARGB,
		Source:   img.source,
		Format:   string(img.defaultFormat()),
	}
}
