package commands

// Root command for the Cobra CLI
// Loads config and starts logging before any subcommand runs
// Registers the chart subcommands (compare, sweep-delay)

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"hcran-charts/internal/chart"
	"hcran-charts/internal/config"
	"hcran-charts/internal/infra/log"
	"hcran-charts/internal/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrUsage is returned after usage text was printed; callers exit 1 silently
var ErrUsage = errors.New("usage")

var cfg *config.Config

// standaloneName replaces the command path in usage text for the
// single-purpose binaries
var standaloneName string

var rootCmd = &cobra.Command{
	Use:   "hcran-charts",
	Short: "H-CRAN evaluation charts - static vs dynamic allocation and sensing-period delay sweeps",
	Long: `hcran-charts renders the H-CRAN channel allocation evaluation charts as PNG images:
grouped bar charts comparing static and dynamic allocation, and a line chart of the mean
end-to-end delay across RRH sensing periods read from simulation result directories.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	defer log.Sync()
	return rootCmd.Execute()
}

// ExecuteStandalone runs a single subcommand as if it were its own binary
func ExecuteStandalone(name string, args []string) error {
	standaloneName = name
	rootCmd.SetArgs(append([]string{name}, args...))
	return Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sweepDelayCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := log.Init(loaded.Log.Dir, loaded.Log.Level); err != nil {
		return err
	}
	cfg = loaded
	log.LogDebug("Config loaded",
		zap.String("command", cmd.Name()),
		zap.String("imagesDir", cfg.Output.ImagesDir),
		zap.String("backend", cfg.Render.Backend))
	return nil
}

func newRenderer() (chart.Renderer, error) {
	return chart.NewRenderer(chart.Options{
		Backend:  cfg.Render.Backend,
		FontPath: cfg.Render.FontPath,
	})
}

// publishCharts sends the charts to Telegram when enabled. The files are
// already on disk, so a failure here only affects delivery.
func publishCharts(charts []publish.Chart) error {
	if !cfg.Telegram.Enabled {
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	publisher, err := publish.NewTelegramPublisher(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.LogError("Failed to initialize Telegram publisher", zap.Error(err))
		return err
	}
	return publisher.PublishAll(ctx, charts)
}
