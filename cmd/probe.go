package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/swatchcard/internal/generator"
	"github.com/AnyUserName/swatchcard/internal/pipeline"
	"github.com/AnyUserName/swatchcard/internal/swatch"
)

var probeCmd = &cobra.Command{
	Use:   "probe <request.json>",
	Short: "Fetch and place every image without writing a workbook",
	Long: `Runs the image pipeline for each swatch and prints what would be
embedded: encoded format, size, placement and content hash, or the reason
the row would get a placeholder.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, true)
	defer log.Sync()

	req, err := swatch.LoadFile(args[0])
	if err != nil {
		return err
	}
	if err := swatch.Validate(req); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gen := generator.FromConfig(cfg, log)
	start := time.Now()
	outcomes := gen.Pipeline().Run(ctx, req.Swatches)

	prof := gen.Profile()
	fmt.Println()
	fmt.Printf("  Profile:     %s (%dx%d cell)\n", prof.Name, prof.TargetWidth, prof.TargetHeight)
	fmt.Printf("  Workers:     %d\n", gen.Pipeline().Workers())
	fmt.Println()

	for i, o := range outcomes {
		printOutcome(i, req.Swatches[i], o)
	}

	stats := pipeline.Summarize(outcomes)
	fmt.Println()
	fmt.Printf("  %d/%d placed, %s of image data, %s\n",
		stats.Placed, stats.Total, formatBytes(stats.OutputBytes), time.Since(start).Round(time.Millisecond))
	fmt.Println()
	return nil
}

func printOutcome(i int, s swatch.Swatch, o pipeline.Outcome) {
	label := truncKey(s.StyleNumber, 16)
	if !o.Placed() {
		reason := "no image"
		if o.Err != nil {
			reason = o.Err.Error()
		}
		fmt.Printf("  ✗ #%-4d %-16s %s\n", i+1, label, reason)
		return
	}

	img, pl := o.Image, o.Placement
	shownW, shownH := pl.Size(img.Width, img.Height)
	fmt.Printf("  ✓ #%-4d %-16s %-4s %4dx%-4d %8s  shown=%.0fx%.0f offset=(%.1f,%.1f)  %s\n",
		i+1, label, img.Format, img.Width, img.Height, formatBytes(int64(len(img.Data))),
		shownW, shownH, pl.OffsetX, pl.OffsetY, img.Hash)
}
