package main

import (
	"fmt"
	"os"
	"path/filepath"

	"hcran-charts/internal/chart"
	"hcran-charts/internal/features/comparison"
	"hcran-charts/internal/features/sweep"
)

// go run etc/tools/test_chart.go
// renders every chart with both backends into etc/charts/<backend>/
func main() {
	fmt.Println("Generating test charts...")

	samples := sweep.SortByPeriod([]sweep.Point{
		{Label: "2s", Mean: 820},
		{Label: "1s", Mean: 610},
		{Label: "0.5s", Mean: 455},
		{Label: "0.25s", Mean: 390},
	})

	for _, backend := range []string{chart.BackendPlot, chart.BackendCanvas} {
		r, err := chart.NewRenderer(chart.Options{Backend: backend})
		if err != nil {
			fmt.Printf("Error creating %s renderer: %v\n", backend, err)
			os.Exit(1)
		}

		dir := filepath.Join("etc", "charts", backend)
		paths, err := comparison.Generate(r, dir)
		if err != nil {
			fmt.Printf("Error generating comparison charts: %v\n", err)
			os.Exit(1)
		}

		line := sweep.Chart(samples)
		sweepPath := filepath.Join(dir, line.FileName)
		if err := r.RenderLine(line, sweepPath); err != nil {
			fmt.Printf("Error generating sweep chart: %v\n", err)
			os.Exit(1)
		}

		for _, p := range append(paths, sweepPath) {
			fmt.Printf("Chart generated successfully: %s\n", p)
		}
	}
	fmt.Println("Open the files to compare the backends!")
}
