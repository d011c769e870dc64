// Package normalize turns raw downloaded bytes into a bounded, upright,
// re-encoded thumbnail buffer ready to embed in a sheet.
package normalize

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/encoder"
	"github.com/AnyUserName/swatchcard/internal/hasher"
)

// ErrDecode is returned for corrupt or unsupported image data.
var ErrDecode = fmt.Errorf("%w: decode", apperr.ErrImageUnavailable)

// DefaultMaxPixels caps the declared canvas of a source image. Decoding
// allocates the full canvas, so the header is checked first.
const DefaultMaxPixels int64 = 50_000_000

// Image is a normalized, re-encoded image. Width and Height describe the
// encoded buffer, which is the image that gets placed.
type Image struct {
	Data     []byte
	Width    int
	Height   int
	Format   string // "jpeg" or "png"
	Ext      string // file extension without dot
	HasAlpha bool
	Hash     string // xxhash64 hex of Data
}

// Normalizer decodes, orients, downsizes and re-encodes images. Safe for
// concurrent use.
type Normalizer struct {
	registry  *encoder.Registry
	quality   int
	maxPixels int64
}

// New creates a Normalizer encoding lossy output at quality.
func New(registry *encoder.Registry, quality int) *Normalizer {
	if registry == nil {
		registry = encoder.NewRegistry()
	}
	return &Normalizer{registry: registry, quality: quality, maxPixels: DefaultMaxPixels}
}

// WithMaxPixels sets the largest width*height accepted for decoding.
// Non-positive values restore DefaultMaxPixels.
func (n *Normalizer) WithMaxPixels(limit int64) *Normalizer {
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	n.maxPixels = limit
	return n
}

// MaxPixels returns the decode limit in pixels.
func (n *Normalizer) MaxPixels() int64 { return n.maxPixels }

// Normalize decodes raw, applies EXIF orientation, fits the result into
// 2*targetW x 2*targetH without upscaling, and re-encodes it. Sources with
// an alpha channel or a transparent palette entry are written as PNG, the
// rest as JPEG.
func (n *Normalizer) Normalize(raw []byte, targetW, targetH int) (*Image, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", apperr.ErrImageUnavailable, targetW, targetH)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > n.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d canvas exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, n.maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	// Orientation is only ever applied to JPEGs, which cannot carry alpha,
	// so the decoded image still has its source colour model here.
	hasAlpha := format != "jpeg" && HasAlpha(img)

	fitted := imaging.Fit(img, targetW*2, targetH*2, imaging.Lanczos)
	b := fitted.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: resized to %dx%d", apperr.ErrImageUnavailable, b.Dx(), b.Dy())
	}

	enc := n.registry.Select(hasAlpha)
	if enc == nil {
		return nil, errors.New("no encoder registered")
	}
	data, err := enc.Encode(fitted, n.quality)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", apperr.ErrImageUnavailable, enc.Format(), err)
	}

	return &Image{
		Data:     data,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Format:   enc.Format(),
		Ext:      enc.Extension(),
		HasAlpha: hasAlpha && enc.PreservesAlpha(),
		Hash:     hasher.ContentHash(data, 0),
	}, nil
}

// HasAlpha reports whether img carries transparency: a straight-alpha
// colour model, a palette with a non-opaque entry, or a premultiplied
// image that is not fully opaque.
func HasAlpha(img image.Image) bool {
	model := img.ColorModel()
	if pal, ok := model.(color.Palette); ok {
		for _, c := range pal {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	switch model {
	case color.NRGBAModel, color.NRGBA64Model, color.AlphaModel, color.Alpha16Model, color.NYCbCrAModel:
		return true
	case color.RGBAModel, color.RGBA64Model:
		// Decoders use premultiplied RGBA for plain truecolor sources.
		if o, ok := img.(interface{ Opaque() bool }); ok {
			return !o.Opaque()
		}
		return true
	}
	return false
}
