package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AnyUserName/swatchcard/internal/generator"
	"github.com/AnyUserName/swatchcard/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP export service",
	Long: `Serves POST /api/export-excel, GET /api/health, GET / and GET /metrics.

The listen address comes from --addr, server.addr in the config file,
SWATCHCARD_SERVER_ADDR or PORT, in that order of precedence.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log := newLogger(cfg, false)
	defer log.Sync()

	log.Info("starting swatchcard",
		zap.String("version", version),
		zap.String("profile", cfg.Report.Profile),
		zap.Int("workers", cfg.Pipeline.Workers),
		zap.Duration("fetch_timeout", cfg.Fetch.Timeout),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, generator.FromConfig(cfg, log), log)
	return srv.Run(ctx)
}
