package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/metrics"
	"github.com/AnyUserName/swatchcard/internal/normalize"
	"github.com/AnyUserName/swatchcard/internal/placement"
)

// Outcome is the result for one swatch index. Image is nil when the
// swatch has no image to place; Err then says why.
type Outcome struct {
	Index     int
	Image     *normalize.Image
	Placement placement.Placement
	Err       error
	Elapsed   time.Duration
}

// Placed reports whether the outcome carries an image to embed.
func (o Outcome) Placed() bool { return o.Image != nil }

// process runs fetch → normalize → place for one swatch. Panics are
// recovered so one bad image cannot take down the request.
func (p *Pipeline) process(ctx context.Context, idx int, url string) (out Outcome) {
	start := time.Now()
	out.Index = idx

	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Index: idx, Err: fmt.Errorf("%w: panic: %v", apperr.ErrImageUnavailable, r)}
		}
		out.Elapsed = time.Since(start)
		metrics.ImageFetchSeconds.Observe(out.Elapsed.Seconds())

		if out.Err != nil {
			p.log.Debug("no image for swatch", zap.Int("index", idx), zap.String("url", url), zap.Error(out.Err))
		} else {
			p.log.Debug("image placed",
				zap.Int("index", idx),
				zap.String("format", out.Image.Format),
				zap.Int("width", out.Image.Width),
				zap.Int("height", out.Image.Height),
				zap.Float64("scale", out.Placement.ScaleX),
			)
		}
	}()

	raw, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		out.Err = err
		return out
	}

	img, err := p.normalizer.Normalize(raw, p.cfg.TargetWidth, p.cfg.TargetHeight)
	if err != nil {
		out.Err = err
		return out
	}

	pl, err := placement.Fit(img.Width, img.Height, p.cfg.TargetWidth, p.cfg.TargetHeight)
	if err != nil {
		out.Err = fmt.Errorf("%w: %v", apperr.ErrImageUnavailable, err)
		return out
	}

	out.Image = img
	out.Placement = pl
	return out
}
