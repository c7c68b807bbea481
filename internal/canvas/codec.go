package canvas

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-canvas-mcp/internal/storage"
)

// Format names an encoded image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatWebP Format = "webp"
)

// DefaultJPEGQuality is used when no quality is requested.
const DefaultJPEGQuality = 75

// codec describes what the underlying libraries can do with a format.
// Decoders come from the image package registry (populated by the
// standard codecs, x/image and imaging's imports); encoders from imaging.
type codec struct {
	format     Format
	extensions []string
	mime       string
	canRead    bool
	encoder    *imaging.Format
}

var codecs = map[Format]codec{}

// registerCodec records a format, asking the decoder registry whether it
// recognizes header and imaging whether it can encode the first extension.
func registerCodec(format Format, mime string, header []byte, extensions ...string) {
	c := codec{format: format, extensions: extensions, mime: mime}
	// A registered decoder fails on the truncated header; only an unknown
	// one reports image.ErrFormat.
	_, _, err := image.DecodeConfig(bytes.NewReader(header))
	c.canRead = !errors.Is(err, image.ErrFormat)
	if f, err := imaging.FormatFromExtension(extensions[0]); err == nil {
		c.encoder = &f
	}
	codecs[format] = c
}

func init() {
	registerCodec(FormatPNG, "image/png", []byte("\x89PNG\r\n\x1a\n"), ".png")
	registerCodec(FormatJPEG, "image/jpeg", []byte("\xff\xd8"), ".jpg", ".jpeg", ".jpe", ".jfif")
	registerCodec(FormatGIF, "image/gif", []byte("GIF89a"), ".gif")
	registerCodec(FormatBMP, "image/bmp", []byte("BM\x00\x00\x00\x00\x00\x00\x00\x00"), ".bmp")
	registerCodec(FormatTIFF, "image/tiff", []byte("II*\x00"), ".tif", ".tiff")
	registerCodec(FormatWebP, "image/webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), ".webp")
}

// ParseFormat resolves a format name or file extension ("jpg", ".TIF",
// "image/png" ...) to a registered Format.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "image/")
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	for _, c := range codecs {
		for _, ext := range c.extensions {
			if ext == name {
				return c.format, nil
			}
		}
		if "."+string(c.format) == name {
			return c.format, nil
		}
	}
	return "", invalidArg("unknown image format %q", s)
}

// FormatFromPath infers a format from the extension of a path or URL.
// Query strings and fragments of URLs are ignored.
func FormatFromPath(location string) (Format, bool) {
	p := location
	if storage.IsURL(location) {
		if u, err := url.Parse(location); err == nil {
			p = u.Path
		}
	}
	ext := path.Ext(p)
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// MimeType returns the media type of f.
func (f Format) MimeType() string {
	if c, ok := codecs[f]; ok {
		return c.mime
	}
	return "application/octet-stream"
}

// ReadableFormats lists the formats that can be decoded, sorted by name.
func ReadableFormats() []string {
	var out []string
	for f, c := range codecs {
		if c.canRead {
			out = append(out, string(f))
		}
	}
	sort.Strings(out)
	return out
}

// WritableFormats lists the formats that can be encoded, sorted by name.
func WritableFormats() []string {
	var out []string
	for f, c := range codecs {
		if c.encoder != nil {
			out = append(out, string(f))
		}
	}
	sort.Strings(out)
	return out
}

// defaultFormat is the format used when none is requested: the source
// extension if it names a writable format, otherwise PNG.
func (img *Image) defaultFormat() Format {
	if img.source != "" {
		if f, ok := FormatFromPath(img.source); ok && codecs[f].encoder != nil {
			return f
		}
	}
	return FormatPNG
}

// resolveFormat picks the explicit format, then the path hint, then the
// default.
func (img *Image) resolveFormat(explicit, pathHint string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	if pathHint != "" {
		if f, ok := FormatFromPath(pathHint); ok {
			return f, nil
		}
	}
	return img.defaultFormat(), nil
}

// WriteFormat reports the format Write would use for dest and an explicit
// format name, either of which may be empty.
func (img *Image) WriteFormat(dest, explicit string) (Format, error) {
	if dest == "" {
		dest = img.source
	}
	return img.resolveFormat(explicit, dest)
}

// EncodeOptions control encoding.
type EncodeOptions struct {
	// Format overrides format inference. Empty means infer.
	Format string

	// Quality is the JPEG quality, 1-100. Zero selects DefaultJPEGQuality.
	Quality int
}

// Encode serializes the image. An empty format is inferred from the source
// descriptor's extension, falling back to PNG.
func (img *Image) Encode(format string) ([]byte, error) {
	return img.EncodeWithOptions(EncodeOptions{Format: format})
}

// EncodeWithOptions serializes the image using opts.
func (img *Image) EncodeWithOptions(opts EncodeOptions) ([]byte, error) {
	f, err := img.resolveFormat(opts.Format, "")
	if err != nil {
		return nil, err
	}
	return img.encode(f, opts.Quality)
}

func (img *Image) encode(f Format, quality int) ([]byte, error) {
	c, ok := codecs[f]
	if !ok || c.encoder == nil {
		return nil, invalidArg("format %q is not writable", f)
	}
	if quality == 0 {
		quality = DefaultJPEGQuality
	}
	if quality < 1 || quality > 100 {
		return nil, invalidArg("quality must be within 1-100, got %d", quality)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img.buf.pix, *c.encoder, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return buf.Bytes(), nil
}

// EncodeToBase64 returns base64.StdEncoding of Encode(format).
func (img *Image) EncodeToBase64(format string) (string, error) {
	data, err := img.Encode(format)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// WriteOptions control Write.
type WriteOptions struct {
	// Format overrides inference from the destination extension.
	Format string

	// Quality is the JPEG quality, 1-100. Zero selects DefaultJPEGQuality.
	Quality int

	// NoOverwrite makes Write fail with ErrNoOverwrite when the destination
	// already exists.
	NoOverwrite bool

	// Store receives the encoded bytes. Nil uses the default local store.
	Store storage.Store
}

// Write encodes the image and stores it at dest. An empty dest writes back
// to the source descriptor; without one Write fails with ErrNoSourcePath.
// An explicit dest is a one-shot target: the source descriptor is left as is.
func (img *Image) Write(ctx context.Context, dest string, opts WriteOptions) error {
	if dest == "" {
		dest = img.source
	}
	if dest == "" {
		return &WriteError{Err: ErrNoSourcePath}
	}

	f, err := img.WriteFormat(dest, opts.Format)
	if err != nil {
		return &WriteError{Path: dest, Format: opts.Format, Err: err}
	}
	data, err := img.encode(f, opts.Quality)
	if err != nil {
		return &WriteError{Path: dest, Format: string(f), Err: err}
	}

	store := opts.Store
	if store == nil {
		store = storage.Default()
	}
	if err := store.Write(ctx, dest, data, !opts.NoOverwrite); err != nil {
		return &WriteError{Path: dest, Format: string(f), Err: err}
	}
	return nil
}
