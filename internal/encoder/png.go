package encoder

import (
	"bytes"
	"image"
	"image/png"
)

// PNGEncoder encodes images to PNG using Go's standard library.
// Used for images with alpha transparency.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string       { return "png" }
func (e *PNGEncoder) Extension() string    { return "png" }
func (e *PNGEncoder) PreservesAlpha() bool { return true }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(128 * 1024)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
