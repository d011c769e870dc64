package encoder

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
)

// DefaultJPEGQuality is used when the caller passes an out-of-range quality.
const DefaultJPEGQuality = 85

// JPEGEncoder encodes images to baseline JPEG using Go's standard library.
// Sources are flattened to an opaque RGB canvas first.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string       { return "jpeg" }
func (e *JPEGEncoder) Extension() string    { return "jpg" }
func (e *JPEGEncoder) PreservesAlpha() bool { return false }

func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	var buf bytes.Buffer
	buf.Grow(64 * 1024) // thumbnails rarely exceed this

	err := jpeg.Encode(&buf, toRGB(img), &jpeg.Options{Quality: quality})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toRGB drops any alpha channel by compositing over white.
func toRGB(img image.Image) image.Image {
	switch img.(type) {
	case *image.YCbCr, *image.Gray:
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
