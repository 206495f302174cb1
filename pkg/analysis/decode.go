package analysis

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/waterants/sketchcoach/pkg/errors"
)

// DefaultMaxDimension bounds the longest side of a decoded drawing.
const DefaultMaxDimension = 1024

// DefaultMaxPixels bounds width*height of an upload before it is decoded,
// so a small compressed file cannot expand into a huge raster.
const DefaultMaxPixels = 40_000_000

// Decoded is a drawing normalized for scoring.
type Decoded struct {
	// Image is opaque RGB; any alpha has been composited over white.
	Image *image.RGBA

	// Format is the name of the decoder that read the upload (png, jpeg, ...).
	Format string

	// Width and Height are the original dimensions before downscaling.
	Width, Height int
}

// Decode reads an image and normalizes it to opaque RGB. Images whose longest
// side exceeds maxDim are downscaled to fit, keeping the aspect ratio; a
// maxDim of 0 disables downscaling.
//
// The header is checked before any pixels are decoded: images with more than
// maxPixels pixels are rejected. A maxPixels of 0 disables the check.
//
// Any read, format or size error is returned as an INVALID_IMAGE error.
func Decode(r io.Reader, maxDim, maxPixels int) (*Decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "read image")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image header")
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, errors.New(errors.ErrCodeInvalidImage,
			"image is %dx%d, more than %d pixels", cfg.Width, cfg.Height, maxPixels)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image")
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidImage, "image has no pixels")
	}

	out := &Decoded{Format: format, Width: b.Dx(), Height: b.Dy()}

	if maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim) {
		src = resize.Thumbnail(uint(maxDim), uint(maxDim), src, resize.Lanczos3)
		b = src.Bounds()
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	out.Image = dst

	return out, nil
}
