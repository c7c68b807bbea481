package metadata

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// jpegWithMake encodes a small JPEG and splices in an APP1 segment holding
// a single-entry IFD0 with the Make tag.
func jpegWithMake(t *testing.T, maker string) []byte {
	t.Helper()
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, image.NewGray(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}

	value := append([]byte(maker), 0)
	le := binary.LittleEndian
	var tiffData bytes.Buffer
	tiffData.WriteString("II")
	binary.Write(&tiffData, le, uint16(42))
	binary.Write(&tiffData, le, uint32(8))          // IFD0 offset
	binary.Write(&tiffData, le, uint16(1))          // entry count
	binary.Write(&tiffData, le, uint16(0x010F))     // Make
	binary.Write(&tiffData, le, uint16(2))          // ASCII
	binary.Write(&tiffData, le, uint32(len(value))) // count
	binary.Write(&tiffData, le, uint32(26))         // value offset
	binary.Write(&tiffData, le, uint32(0))          // next IFD
	tiffData.Write(value)

	payload := append([]byte("Exif\x00\x00"), tiffData.Bytes()...)
	var out bytes.Buffer
	out.Write(enc.Bytes()[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(enc.Bytes()[2:])
	return out.Bytes()
}

func TestFromBytes_ReadsExif(t *testing.T) {
	tags, err := FromBytes(jpegWithMake(t, "Canvas"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if got := tags["Make"]; got != "Canvas" {
		t.Errorf("Make = %q, want %q (tags: %v)", got, "Canvas", tags)
	}
	if names := tags.Names(); len(names) == 0 || names[0] != "Make" {
		t.Errorf("Names() = %v", names)
	}
}

func TestFromBytes_NoExif(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	tags, err := FromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want none", tags)
	}
}

func TestTags_FirstDefinedWins(t *testing.T) {
	tags := Tags{"Make": "first"}
	if err := tags.Walk("Make", nil); err != nil {
		t.Fatal(err)
	}
	if tags["Make"] != "first" {
		t.Errorf("Make = %q, want first value kept", tags["Make"])
	}
}

func TestRead_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, jpegWithMake(t, "Lens Co"), 0644); err != nil {
		t.Fatal(err)
	}
	tags, err := Read(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if tags["Make"] != "Lens Co" {
		t.Errorf("Make = %q, want %q", tags["Make"], "Lens Co")
	}

	if _, err := Read(context.Background(), nil, filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}
