package analysis

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/waterants/sketchcoach/pkg/errors"
)

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{"png", pngBytes(t, 8, 6, color.Black), "png"},
		{"jpeg", jpegBytes(t, 8, 6), "jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(bytes.NewReader(tt.data), DefaultMaxDimension, DefaultMaxPixels)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if d.Format != tt.format {
				t.Errorf("Format = %q, want %q", d.Format, tt.format)
			}
			if d.Width != 8 || d.Height != 6 {
				t.Errorf("size = %dx%d, want 8x6", d.Width, d.Height)
			}
			if b := d.Image.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("image bounds = %v", b)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, data := range []string{"", "not an image", "\x89PNG\r\n\x1a\n garbage"} {
		_, err := Decode(strings.NewReader(data), DefaultMaxDimension, DefaultMaxPixels)
		if err == nil {
			t.Fatalf("Decode(%q) should fail", data)
		}
		if !errors.Is(err, errors.ErrCodeInvalidImage) {
			t.Errorf("Decode(%q) code = %q, want %q", data, errors.GetCode(err), errors.ErrCodeInvalidImage)
		}
	}
}

func TestDecodeCompositesAlphaOverWhite(t *testing.T) {
	data := pngBytes(t, 2, 2, color.NRGBA{0, 0, 0, 0})
	d, err := Decode(bytes.NewReader(data), 0, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := d.Image.RGBAAt(1, 1)
	if got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("transparent pixel = %v, want opaque white", got)
	}

	data = pngBytes(t, 2, 2, color.NRGBA{255, 0, 0, 255})
	d, err = Decode(bytes.NewReader(data), 0, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := d.Image.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("opaque pixel = %v, want red", got)
	}
}

func TestDecodeDownscales(t *testing.T) {
	data := pngBytes(t, 400, 100, color.Black)
	d, err := Decode(bytes.NewReader(data), 200, DefaultMaxPixels)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Width != 400 || d.Height != 100 {
		t.Errorf("original size = %dx%d, want 400x100", d.Width, d.Height)
	}
	b := d.Image.Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("scaled bounds = %dx%d, want 200x50", b.Dx(), b.Dy())
	}
}

func TestDecodeSmallImageUntouched(t *testing.T) {
	data := pngBytes(t, 50, 40, color.Black)
	d, err := Decode(bytes.NewReader(data), 200, DefaultMaxPixels)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := d.Image.Bounds(); b.Dx() != 50 || b.Dy() != 40 {
		t.Errorf("bounds = %v, want 50x40", b)
	}
}

// hugeHeaderPNG returns a tiny PNG whose header claims w x h pixels.
func hugeHeaderPNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	// 8-byte signature, then IHDR: length(4) type(4) width(4) height(4) ... crc.
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestDecodePixelLimit(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		maxPixels int
		wantErr   bool
	}{
		{"under limit", pngBytes(t, 50, 100, color.Black), 5000, false},
		{"over limit", pngBytes(t, 51, 100, color.Black), 5000, true},
		{"limit disabled", pngBytes(t, 51, 100, color.Black), 0, false},
		{"forged header", hugeHeaderPNG(t, 16000, 16000), DefaultMaxPixels, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data), DefaultMaxDimension, tt.maxPixels)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidImage) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidImage)
			}
			if !strings.Contains(err.Error(), "pixels") {
				t.Errorf("err = %v, want the pixel limit to be reported", err)
			}
		})
	}
}
