package commands

// Renders the static vs dynamic comparison bar charts
// (AP power, diversity gain, E2E delay) into the images directory

import (
	"hcran-charts/internal/features/comparison"
	"hcran-charts/internal/infra/log"
	"hcran-charts/internal/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:     "compare",
	Aliases: []string{"plot_metrics"},
	Short:   "Render static vs dynamic allocation bar charts",
	Long: `Render the AP power, diversity gain and end-to-end delay comparison charts for the
24 GHz and 60 GHz bands into the images directory, overwriting existing files.`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	paths, err := comparison.Generate(renderer, cfg.Output.ImagesDir)
	if err != nil {
		log.LogError("Comparison charts failed", zap.Error(err))
		return err
	}

	charts := comparison.Charts()
	toPublish := make([]publish.Chart, len(paths))
	for i, p := range paths {
		toPublish[i] = publish.Chart{Path: p, Caption: charts[i].Title}
	}
	return publishCharts(toPublish)
}
