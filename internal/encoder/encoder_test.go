package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func checker(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x/4+y/4)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: 64, B: 255 - v, A: alpha})
		}
	}
	return img
}

func TestSelect(t *testing.T) {
	r := NewRegistry()
	if got := r.Select(true).Format(); got != "png" {
		t.Errorf("alpha source: got %s, want png", got)
	}
	if got := r.Select(false).Format(); got != "jpeg" {
		t.Errorf("opaque source: got %s, want jpeg", got)
	}
	if got := r.String(); got != "encoders: jpeg, png" {
		t.Errorf("String: got %q", got)
	}
}

func TestJPEGEncoder_Decodes(t *testing.T) {
	data, err := (&JPEGEncoder{}).Encode(checker(32, 24, 255), 85)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("bounds: got %v", b)
	}
}

func TestJPEGEncoder_QualityFallback(t *testing.T) {
	enc := &JPEGEncoder{}
	a, err := enc.Encode(checker(16, 16, 255), 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	b, err := enc.Encode(checker(16, 16, 255), DefaultJPEGQuality)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("quality 0 should fall back to the default quality")
	}
}

func TestPNGEncoder_KeepsAlpha(t *testing.T) {
	data, err := (&PNGEncoder{}).Encode(checker(8, 8, 100), 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	_, _, _, a := img.At(1, 1).RGBA()
	if a>>8 != 100 {
		t.Errorf("alpha: got %d, want 100", a>>8)
	}
}
