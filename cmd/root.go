package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AnyUserName/swatchcard/internal/config"
	"github.com/AnyUserName/swatchcard/internal/logger"
	"github.com/AnyUserName/swatchcard/internal/profile"
)

var (
	version = "2.0.0"

	cfgFile     string
	profileName string
	workers     int
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "swatchcard",
	Short: "Build swatch card spreadsheets with embedded thumbnails",
	Long: `swatchcard turns a list of garment swatches (style metadata plus an
image URL) into an .xlsx report with one row per swatch and a centred
thumbnail in the first cell.

Images are fetched concurrently, oriented, downscaled and re-encoded.
Rows whose image cannot be fetched get a "No Image" placeholder.`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default ./swatchcard.yaml)")
	pf.StringVarP(&profileName, "profile", "p", "", fmt.Sprintf("layout profile %v", profile.Names()))
	pf.IntVarP(&workers, "workers", "w", 0, fmt.Sprintf("concurrent image fetches (%d-%d)", config.MinWorkers, config.MaxWorkers))
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"swatchcard %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// loadConfig resolves configuration and applies the global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if profileName != "" {
		if !profile.Known(profileName) {
			return nil, fmt.Errorf("unknown profile %q (known: %v)", profileName, profile.Names())
		}
		cfg.Report.Profile = profileName
	}
	if workers > 0 {
		cfg.Pipeline.Workers = workers
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger. Offline commands log warnings only
// unless --verbose is set, so their printed report stays readable.
func newLogger(cfg *config.Config, quiet bool) *zap.Logger {
	level := cfg.Log.Level
	if quiet && !verbose {
		level = "warn"
	}
	return logger.New(level, cfg.Log.Format)
}
