package comparison

// Static vs dynamic channel allocation, sample figures per frequency band
// Renders AP power, diversity gain and E2E delay as grouped bar charts

import (
	"fmt"
	"path/filepath"
	"time"

	"hcran-charts/internal/chart"
	logging "hcran-charts/internal/infra/log"

	"go.uber.org/zap"
)

const (
	StaticLabel  = "Static"
	DynamicLabel = "Dynamic"
)

// Frequencies are the category axis shared by all three charts
var Frequencies = []string{"24 GHz", "60 GHz"}

// Metric is one static/dynamic pair with its chart text
type Metric struct {
	Title    string
	YLabel   string
	FileName string
	Static   []float64
	Dynamic  []float64
}

// Metrics holds the sample figures, in output order
var Metrics = []Metric{
	{
		Title:    "AP Power Comparison",
		YLabel:   "AP Power (mW)",
		FileName: "AP_power_comparison.png",
		Static:   []float64{380, 480},
		Dynamic:  []float64{480, 600},
	},
	{
		Title:    "Diversity Gain Comparison",
		YLabel:   "Diversity Gain",
		FileName: "diversity_gain_comparison.png",
		Static:   []float64{8, 14},
		Dynamic:  []float64{12, 18},
	},
	{
		Title:    "E2E Delay Comparison",
		YLabel:   "End-to-End Delay (ms)",
		FileName: "e2e_delay_comparison.png",
		Static:   []float64{600, 1000},
		Dynamic:  []float64{300, 800},
	},
}

// Chart turns a metric into a grouped bar chart over Frequencies
func (m Metric) Chart() chart.GroupedBars {
	return chart.GroupedBars{
		Title:      m.Title,
		YLabel:     m.YLabel,
		Categories: Frequencies,
		Series: []chart.Series{
			{Name: StaticLabel, Values: m.Static},
			{Name: DynamicLabel, Values: m.Dynamic},
		},
		FileName: m.FileName,
	}
}

// Charts returns the three comparison charts in output order
func Charts() []chart.GroupedBars {
	charts := make([]chart.GroupedBars, len(Metrics))
	for i, m := range Metrics {
		charts[i] = m.Chart()
	}
	return charts
}

// Generate renders every chart into imagesDir, overwriting existing files,
// and returns the written paths in order.
func Generate(r chart.Renderer, imagesDir string) ([]string, error) {
	start := time.Now()
	paths := make([]string, 0, len(Metrics))

	for _, c := range Charts() {
		out := filepath.Join(imagesDir, c.FileName)
		if err := r.RenderBars(c, out); err != nil {
			return paths, fmt.Errorf("failed to render %s: %w", c.Title, err)
		}
		logging.LogInfo("Comparison chart generated",
			zap.String("filename", out),
			zap.Int("categories", c.TickCount()),
			zap.Int("barsPerCategory", c.BarsPerCategory()))
		paths = append(paths, out)
	}

	logging.LogSuccess("Comparison charts generated",
		zap.Strings("files", paths),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return paths, nil
}
