package normalize

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/encoder"
	"github.com/AnyUserName/swatchcard/internal/fixture"
)

func newNormalizer() *Normalizer {
	return New(encoder.NewRegistry(), 85)
}

func decodedSize(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height, format
}

func TestNormalize_DownscalesJPEGIntoEnvelope(t *testing.T) {
	img, err := newNormalizer().Normalize(fixture.JPEG(800, 600), 150, 150)
	require.NoError(t, err)

	assert.Equal(t, "jpeg", img.Format)
	assert.Equal(t, 300, img.Width)
	assert.Equal(t, 225, img.Height)
	assert.False(t, img.HasAlpha)
	assert.Len(t, img.Hash, 16)

	w, h, format := decodedSize(t, img.Data)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, img.Width, w)
	assert.Equal(t, img.Height, h)
}

func TestNormalize_SmallImageNotUpscaled(t *testing.T) {
	img, err := newNormalizer().Normalize(fixture.JPEG(90, 40), 150, 150)
	require.NoError(t, err)
	assert.Equal(t, 90, img.Width)
	assert.Equal(t, 40, img.Height)
}

func TestNormalize_AlphaKeepsPNG(t *testing.T) {
	img, err := newNormalizer().Normalize(fixture.PNG(fixture.AlphaGradient(400, 200)), 150, 150)
	require.NoError(t, err)

	assert.Equal(t, "png", img.Format)
	assert.True(t, img.HasAlpha)
	assert.Equal(t, 300, img.Width)
	assert.Equal(t, 150, img.Height)

	_, _, format := decodedSize(t, img.Data)
	assert.Equal(t, "png", format)
}

func TestNormalize_OpaquePNGBecomesJPEG(t *testing.T) {
	img, err := newNormalizer().Normalize(fixture.OpaquePNG(120, 120), 150, 150)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", img.Format)
	assert.False(t, img.HasAlpha)
}

func TestNormalize_TransparentPaletteKeepsPNG(t *testing.T) {
	img, err := newNormalizer().Normalize(fixture.TransparentGIF(50, 50), 150, 150)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.True(t, img.HasAlpha)
}

func TestNormalize_AppliesOrientation(t *testing.T) {
	// Orientation 6: stored landscape, displayed rotated 90° clockwise.
	img, err := newNormalizer().Normalize(fixture.OrientedJPEG(80, 40, 6), 150, 150)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 80, img.Height)

	upright, err := newNormalizer().Normalize(fixture.OrientedJPEG(80, 40, 1), 150, 150)
	require.NoError(t, err)
	assert.Equal(t, 80, upright.Width)
	assert.Equal(t, 40, upright.Height)
}

func TestNormalize_CorruptBytes(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("not an image"), fixture.JPEG(20, 20)[:40]} {
		_, err := newNormalizer().Normalize(raw, 150, 150)
		assert.ErrorIs(t, err, ErrDecode)
		assert.True(t, errors.Is(err, apperr.ErrImageUnavailable))
	}
}

func TestNormalize_RejectsOversizedCanvas(t *testing.T) {
	n := newNormalizer()
	assert.Equal(t, DefaultMaxPixels, n.MaxPixels())

	_, err := n.Normalize(fixture.PNGHeader(20000, 20000), 150, 150)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "20000x20000")

	small := newNormalizer().WithMaxPixels(100 * 100)
	_, err = small.Normalize(fixture.JPEG(101, 100), 150, 150)
	assert.ErrorIs(t, err, ErrDecode)

	img, err := small.Normalize(fixture.JPEG(100, 100), 150, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Width)

	assert.Equal(t, DefaultMaxPixels, newNormalizer().WithMaxPixels(0).MaxPixels())
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := fixture.JPEG(640, 480)
	a, err := newNormalizer().Normalize(raw, 150, 150)
	require.NoError(t, err)
	b, err := newNormalizer().Normalize(raw, 150, 150)
	require.NoError(t, err)
	assert.Equal(t, a.Hash, b.Hash)
	assert.Equal(t, a.Width, b.Width)
	assert.Equal(t, a.Height, b.Height)
}

func TestHasAlpha(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)

	assert.True(t, HasAlpha(image.NewNRGBA(rect)))
	assert.False(t, HasAlpha(image.NewYCbCr(rect, image.YCbCrSubsampleRatio420)))
	assert.False(t, HasAlpha(image.NewGray(rect)))
	assert.False(t, HasAlpha(image.NewCMYK(rect)))

	opaque := image.NewRGBA(rect)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xff
	}
	assert.False(t, HasAlpha(opaque))
	assert.True(t, HasAlpha(image.NewRGBA(rect)))

	assert.False(t, HasAlpha(image.NewPaletted(rect, color.Palette{color.Black, color.White})))
	assert.True(t, HasAlpha(image.NewPaletted(rect, color.Palette{color.Black, color.Transparent})))
}
