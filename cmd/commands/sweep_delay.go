package commands

// Delay sweep: mean E2E delay per result directory, one line chart

import (
	"fmt"
	"time"

	"hcran-charts/internal/features/sweep"
	"hcran-charts/internal/infra/fs"
	"hcran-charts/internal/infra/log"
	"hcran-charts/internal/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepDelayCmd = &cobra.Command{
	Use:     "sweep-delay <result_dir> [result_dir...]",
	Aliases: []string{"sweep_delay"},
	Short:   "Plot mean E2E delay against the RRH sensing period",
	Long: `Read delay_summary.csv from every result directory, average its delay_ms column and
plot the means as a line chart. Directories named like "0.5s" are ordered by period;
if any name is not a period the command-line order is kept.

Empty and NA cells are skipped. A directory whose delay_ms column has no numeric
values is an error (no samples) rather than a gap in the chart, and so is a
non-numeric or infinite value.`,
	Example: "  hcran-charts sweep-delay results/2s/ results/1s/ results/0.5s/ results/0.25s/",
	Args:    requireResultDirs,
	RunE:    runSweepDelay,
}

// requireResultDirs prints usage to stdout when no directory is given.
// Cobra validates args before the config hook, so nothing is created.
func requireResultDirs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return nil
	}
	name := cmd.CommandPath()
	if standaloneName == cmd.Name() {
		name = "sweep_delay"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Usage: %s <result_dir1> <result_dir2> ...\n", name)
	return ErrUsage
}

func runSweepDelay(cmd *cobra.Command, args []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	loader := sweep.Loader{SummaryFile: cfg.Sweep.SummaryFile, Column: cfg.Sweep.Column}
	result, err := loader.Run(args, renderer, cfg.Output.ImagesDir)
	if err != nil {
		log.LogError("Delay sweep failed", zap.Error(err))
		return err
	}

	if cfg.Sweep.Report != "" {
		report := fs.NewSweepReport(result.Path, result.Points, time.Now())
		if err := fs.SaveSweepReport(cfg.Sweep.Report, report); err != nil {
			return err
		}
		log.LogInfo("Sweep report saved", zap.String("path", cfg.Sweep.Report))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved plot to %s\n", result.Path)

	return publishCharts([]publish.Chart{{Path: result.Path, Caption: sweep.ChartTitle}})
}
