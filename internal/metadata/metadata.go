// Package metadata extracts EXIF tags from encoded images.
//
// The result is a flat tag name to description map. Tags from the primary,
// Exif, GPS and interoperability directories are merged; when a name occurs
// more than once the first value seen is kept. Maker notes from Canon and
// Nikon cameras are decoded as well. IPTC records are not read.
package metadata

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/ironsheep/image-canvas-mcp/internal/storage"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Tags maps EXIF field names to human-readable values.
type Tags map[string]string

// Names returns the tag names in sorted order.
func (t Tags) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Read loads location through store and extracts its EXIF tags.
func Read(ctx context.Context, store storage.Store, location string) (Tags, error) {
	if store == nil {
		store = storage.Default()
	}
	data, err := store.Read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return FromBytes(data)
}

// FromBytes extracts the EXIF tags of an encoded image. An image without
// EXIF data yields an empty map and no error.
func FromBytes(data []byte) (Tags, error) {
	tags := Tags{}
	x, err := exif.Decode(bytes.NewReader(data))
	if x == nil {
		// Formats without an EXIF block fail before any directory is read.
		return tags, nil
	}
	if err != nil && exif.IsCriticalError(err) {
		return nil, fmt.Errorf("failed to decode exif: %w", err)
	}
	if err := x.Walk(tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Walk implements exif.Walker.
func (t Tags) Walk(name exif.FieldName, tag *tiff.Tag) error {
	key := string(name)
	if _, seen := t[key]; seen {
		return nil
	}
	t[key] = describe(tag)
	return nil
}

func describe(tag *tiff.Tag) string {
	if tag.Format() == tiff.StringVal {
		if s, err := tag.StringVal(); err == nil {
			return strings.TrimRight(s, "\x00 ")
		}
	}
	return strings.Trim(tag.String(), `"`)
}
