// Package generator runs a full report build: validate the request, fetch
// and place every image, then render the workbook.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/config"
	"github.com/AnyUserName/swatchcard/internal/encoder"
	"github.com/AnyUserName/swatchcard/internal/fetcher"
	"github.com/AnyUserName/swatchcard/internal/metrics"
	"github.com/AnyUserName/swatchcard/internal/normalize"
	"github.com/AnyUserName/swatchcard/internal/pipeline"
	"github.com/AnyUserName/swatchcard/internal/profile"
	"github.com/AnyUserName/swatchcard/internal/report"
	"github.com/AnyUserName/swatchcard/internal/swatch"
	"github.com/AnyUserName/swatchcard/internal/xlsx"
)

// Settings are the document-level options of generated reports.
type Settings struct {
	Profile     profile.Profile
	SheetName   string
	TitlePrefix string
	Author      string
	Company     string
	Footer      string
}

// Result is a rendered report.
type Result struct {
	Reference   string
	Filename    string
	ContentType string
	Data        []byte
	Outcomes    []pipeline.Outcome
	Stats       pipeline.Stats
	Render      report.RenderStats
	Elapsed     time.Duration
}

// Generator builds reports. It is safe for concurrent use; each call to
// Generate owns its outcomes and workbook.
type Generator struct {
	pipe     *pipeline.Pipeline
	settings Settings
	styles   *report.Styles
	log      *zap.Logger
}

// New creates a generator around an existing pipeline.
func New(pipe *pipeline.Pipeline, settings Settings, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if settings.SheetName == "" {
		settings.SheetName = "Swatch Card"
	}
	return &Generator{
		pipe:     pipe,
		settings: settings,
		styles:   report.DefaultStyles(),
		log:      log,
	}
}

// FromConfig wires the fetcher, normalizer and pipeline described by cfg.
func FromConfig(cfg *config.Config, log *zap.Logger) *Generator {
	prof := profile.Get(cfg.Report.Profile)

	f := fetcher.New(fetcher.Config{
		Timeout:            cfg.Fetch.Timeout,
		UserAgent:          cfg.Fetch.UserAgent,
		LenientContentType: cfg.Fetch.LenientContentType,
		MinImageBytes:      cfg.Fetch.MinImageBytes,
		MaxImageBytes:      cfg.Fetch.MaxImageBytes,
	}, nil)
	reg := encoder.NewRegistry()
	n := normalize.New(reg, cfg.Image.JPEGQuality).WithMaxPixels(cfg.Fetch.MaxImagePixels)
	pipe := pipeline.New(pipeline.Config{
		Workers:      cfg.Pipeline.Workers,
		TargetWidth:  prof.TargetWidth,
		TargetHeight: prof.TargetHeight,
	}, f, n, log)

	if log != nil {
		envW, envH := prof.Envelope()
		log.Debug("report generator ready",
			zap.String("profile", prof.Name),
			zap.String("envelope", fmt.Sprintf("%dx%d", envW, envH)),
			zap.Stringer("encoders", reg),
			zap.Int("workers", pipe.Workers()),
		)
	}

	return New(pipe, Settings{
		Profile:     prof,
		SheetName:   cfg.Report.SheetName,
		TitlePrefix: cfg.Report.TitlePrefix,
		Author:      cfg.Report.Author,
		Company:     cfg.Report.Company,
		Footer:      cfg.Report.Footer,
	}, log)
}

// Pipeline returns the underlying image pipeline.
func (g *Generator) Pipeline() *pipeline.Pipeline { return g.pipe }

// Profile returns the layout profile reports are rendered with.
func (g *Generator) Profile() profile.Profile { return g.settings.Profile }

// Generate renders req into a workbook. Only InvalidInput and
// AssemblyFailure errors are returned; image problems degrade single rows.
func (g *Generator) Generate(ctx context.Context, req *swatch.Request) (res *Result, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = string(apperr.CodeOf(err))
		}
		metrics.ReportsTotal.WithLabelValues(status).Inc()
	}()

	if err := swatch.Validate(req); err != nil {
		return nil, err
	}

	ref := req.Reference()
	log := g.log.With(zap.String("reference", ref))

	outcomes := g.pipe.Run(ctx, req.Swatches)

	sink, err := xlsx.New(g.settings.SheetName)
	if err != nil {
		return nil, apperr.AssemblyFailure("create workbook", err)
	}
	defer sink.Close()

	rendered, err := report.Render(sink, report.Assemble(req.Swatches, outcomes), report.Layout{
		Profile: g.settings.Profile,
		Styles:  g.styles,
		Props: report.DocProps{
			Title:   g.settings.TitlePrefix + " - " + ref,
			Author:  g.settings.Author,
			Company: g.settings.Company,
		},
		Footer: report.NewFooter(g.settings.Footer),
	})
	if err != nil {
		log.Error("report assembly failed", zap.Error(err))
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := sink.WriteTo(&buf); err != nil {
		log.Error("workbook serialization failed", zap.Error(err))
		return nil, apperr.AssemblyFailure("serialize workbook", err)
	}

	res = &Result{
		Reference:   ref,
		Filename:    report.Filename(ref),
		ContentType: report.ContentType,
		Data:        buf.Bytes(),
		Outcomes:    outcomes,
		Stats:       pipeline.Summarize(outcomes),
		Render:      rendered,
		Elapsed:     time.Since(start),
	}
	metrics.ReportRows.Observe(float64(rendered.Rows))

	log.Info("report generated",
		zap.String("filename", res.Filename),
		zap.Int("rows", rendered.Rows),
		zap.Int("placed", res.Stats.Placed),
		zap.Int("embed_errors", rendered.Errors),
		zap.Int("bytes", len(res.Data)),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
