// Package placement computes how a normalized image sits inside the fixed
// image-cell footprint of a report row.
package placement

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerate is returned for images or targets with a zero dimension.
var ErrDegenerate = errors.New("degenerate dimensions")

// Placement is the uniform scale and pixel offsets that center an image
// inside the target footprint without distortion.
type Placement struct {
	ScaleX  float64 `json:"scale_x"`
	ScaleY  float64 `json:"scale_y"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Fit scales a nativeW x nativeH image into targetW x targetH.
//
// scale = min(targetW/nativeW, targetH/nativeH, 1). The cap at 1 means an
// image smaller than the footprint is centered at its own size, never
// enlarged.
func Fit(nativeW, nativeH, targetW, targetH int) (Placement, error) {
	if nativeW <= 0 || nativeH <= 0 {
		return Placement{}, fmt.Errorf("%w: image %dx%d", ErrDegenerate, nativeW, nativeH)
	}
	if targetW <= 0 || targetH <= 0 {
		return Placement{}, fmt.Errorf("%w: target %dx%d", ErrDegenerate, targetW, targetH)
	}

	scale := math.Min(float64(targetW)/float64(nativeW), float64(targetH)/float64(nativeH))
	if scale > 1 {
		scale = 1
	}

	finalW := float64(nativeW) * scale
	finalH := float64(nativeH) * scale

	return Placement{
		ScaleX:  scale,
		ScaleY:  scale,
		OffsetX: math.Max(0, (float64(targetW)-finalW)/2),
		OffsetY: math.Max(0, (float64(targetH)-finalH)/2),
	}, nil
}

// Size returns the displayed size of a nativeW x nativeH image under p.
func (p Placement) Size(nativeW, nativeH int) (float64, float64) {
	return float64(nativeW) * p.ScaleX, float64(nativeH) * p.ScaleY
}
