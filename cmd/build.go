package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/swatchcard/internal/generator"
	"github.com/AnyUserName/swatchcard/internal/summary"
	"github.com/AnyUserName/swatchcard/internal/swatch"
)

var (
	buildOutDir  string
	buildSummary bool
)

var buildCmd = &cobra.Command{
	Use:   "build <request.json>",
	Short: "Build a swatch card workbook from a JSON request file",
	Long: `Reads a request of the form {"swatches": [...], "cardInfo": {"poRef": "..."}},
fetches every image, and writes SwatchCard_<poRef>.xlsx to the output
directory. With --summary a swatchcard.summary.json describing each row
is written next to it.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", ".", "output directory")
	buildCmd.Flags().BoolVar(&buildSummary, "summary", false, "also write swatchcard.summary.json")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gen := generator.FromConfig(cfg, log)
	res, err := gen.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	outPath := filepath.Join(absOutput, res.Filename)
	if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	var sum *summary.Summary
	if buildSummary {
		sum = summary.New(res.Reference, gen.Profile().Name)
		sum.Filename = res.Filename
		sum.RunInfo = &summary.RunInfo{
			Workers:      gen.Pipeline().Workers(),
			TargetWidth:  gen.Profile().TargetWidth,
			TargetHeight: gen.Profile().TargetHeight,
			ElapsedMS:    res.Elapsed.Milliseconds(),
		}
		sum.AddOutcomes(req.Swatches, res.Outcomes)
		sum.Stats.EmbedErrors = res.Render.Errors
		sum.Stats.ReportBytes = int64(len(res.Data))
		if err := summary.WriteJSON(sum, filepath.Join(absOutput, "swatchcard.summary.json")); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	printBuildReport(res, req, outPath, sum != nil)
	return nil
}

func printBuildReport(res *generator.Result, req *swatch.Request, outPath string, wroteSummary bool) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║            swatchcard build complete             ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := res.Stats
	fmt.Printf("  Reference:   %s\n", res.Reference)
	fmt.Printf("  Rows:        %d\n", res.Render.Rows)
	fmt.Printf("  Images:      %d placed, %d placeholders\n", stats.Placed, stats.Absent)
	if res.Render.Errors > 0 {
		fmt.Printf("  Rejected:    %d images (written as %q)\n", res.Render.Errors, "Error")
	}
	fmt.Printf("  Image bytes: %s\n", formatBytes(stats.OutputBytes))
	fmt.Printf("  Workbook:    %s (%s)\n", outPath, formatBytes(int64(len(res.Data))))
	fmt.Printf("  Time:        %s\n", res.Elapsed.Round(time.Millisecond))
	fmt.Println()

	// Up to 10 slowest rows.
	type rowTime struct {
		idx     int
		style   string
		elapsed time.Duration
	}
	var items []rowTime
	for i, o := range res.Outcomes {
		items = append(items, rowTime{i, req.Swatches[i].StyleNumber, o.Elapsed})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].elapsed > items[j].elapsed
	})
	n := len(items)
	if n > 10 {
		n = 10
	}
	if n > 0 {
		fmt.Printf("  Slowest %d rows:\n", n)
		for _, it := range items[:n] {
			status := "placed"
			if !res.Outcomes[it.idx].Placed() {
				status = "no image"
			}
			fmt.Printf("    #%-4d %-24s %8s  %s\n", it.idx+1, truncKey(it.style, 24), it.elapsed.Round(time.Millisecond), status)
		}
		fmt.Println()
	}

	if wroteSummary {
		fmt.Println("  Summary:     swatchcard.summary.json")
		fmt.Println()
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
