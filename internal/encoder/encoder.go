package encoder

import (
	"image"
)

// Encoder encodes an image to a specific raster format.
type Encoder interface {
	// Format returns the output format name ("jpeg" or "png").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless encoders ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string

	// PreservesAlpha reports whether transparency survives encoding.
	PreservesAlpha() bool
}
