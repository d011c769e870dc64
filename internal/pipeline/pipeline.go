package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/metrics"
	"github.com/AnyUserName/swatchcard/internal/normalize"
	"github.com/AnyUserName/swatchcard/internal/swatch"
)

// Worker pool bounds. New clamps Config.Workers into [MinWorkers,
// MaxWorkers] and uses DefaultWorkers when it is unset.
const (
	MinWorkers     = 5
	MaxWorkers     = 10
	DefaultWorkers = MaxWorkers
)

// Fetcher downloads the raw bytes behind an image URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Config holds the parameters of a pipeline.
type Config struct {
	Workers      int
	TargetWidth  int
	TargetHeight int
}

// Pipeline fetches, normalizes and places the images of one request.
// A Pipeline holds no per-request state and may serve concurrent requests.
type Pipeline struct {
	cfg        Config
	fetcher    Fetcher
	normalizer *normalize.Normalizer
	log        *zap.Logger
}

// New creates a configured pipeline.
func New(cfg Config, fetcher Fetcher, normalizer *normalize.Normalizer, log *zap.Logger) *Pipeline {
	switch {
	case cfg.Workers <= 0:
		cfg.Workers = DefaultWorkers
	case cfg.Workers < MinWorkers:
		cfg.Workers = MinWorkers
	case cfg.Workers > MaxWorkers:
		cfg.Workers = MaxWorkers
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		normalizer: normalizer,
		log:        log,
	}
}

// Workers returns the effective worker limit.
func (p *Pipeline) Workers() int { return p.cfg.Workers }

// Run processes every swatch and returns one Outcome per input index, in
// input order. It returns only after every task has finished. Individual
// failures never escape: they become Absent outcomes carrying the reason.
func (p *Pipeline) Run(ctx context.Context, swatches []swatch.Swatch) []Outcome {
	start := time.Now()
	results := make([]Outcome, len(swatches))
	sem := semaphore.NewWeighted(int64(p.cfg.Workers))

	var wg sync.WaitGroup
	for i, s := range swatches {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[idx] = Outcome{Index: idx, Err: fmt.Errorf("%w: not started: %v", apperr.ErrImageUnavailable, err)}
				return
			}
			defer sem.Release(1)

			results[idx] = p.process(ctx, idx, url)
		}(i, s.ImageURL)
	}
	wg.Wait()

	stats := Summarize(results)
	for _, r := range results {
		if r.Placed() {
			metrics.ImagesTotal.WithLabelValues("placed").Inc()
		} else {
			metrics.ImagesTotal.WithLabelValues("absent").Inc()
		}
	}
	p.log.Info("images processed",
		zap.Int("placed", stats.Placed),
		zap.Int("total", stats.Total),
		zap.Int("workers", p.cfg.Workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results
}

// Stats aggregates the outcomes of one run.
type Stats struct {
	Total       int
	Placed      int
	Absent      int
	OutputBytes int64
}

// Summarize counts placed and absent outcomes.
func Summarize(outcomes []Outcome) Stats {
	s := Stats{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Placed() {
			s.Placed++
			s.OutputBytes += int64(len(o.Image.Data))
		} else {
			s.Absent++
		}
	}
	return s
}
