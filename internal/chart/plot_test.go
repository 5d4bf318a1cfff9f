package chart

import (
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"
)

func decodePNGSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if format != "png" {
		t.Fatalf("%s: format %q, want png", path, format)
	}
	return cfg.Width, cfg.Height
}

func TestBuildBarPlotGroupsSeries(t *testing.T) {
	p, bars, err := buildBarPlot(sampleBars(), BarSize)
	if err != nil {
		t.Fatalf("buildBarPlot: %v", err)
	}

	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	labelled := 0
	for _, tick := range ticks {
		if tick.Label != "" {
			labelled++
		}
	}
	if labelled != 2 {
		t.Fatalf("expected 2 category ticks, got %d", labelled)
	}
	if ticks[0].Label != "24 GHz" || ticks[1].Label != "60 GHz" {
		t.Fatalf("unexpected tick labels %q, %q", ticks[0].Label, ticks[1].Label)
	}

	if len(bars) != 2 {
		t.Fatalf("expected 2 bar series, got %d", len(bars))
	}
	for i, bc := range bars {
		if bc.Values.Len() != 2 {
			t.Fatalf("series %d: %d bars, want 2", i, bc.Values.Len())
		}
	}
	if bars[0].Offset != -bars[1].Offset || bars[0].Offset >= 0 {
		t.Fatalf("bar groups not centred: offsets %v, %v", bars[0].Offset, bars[1].Offset)
	}
	if bars[0].Values.Value(1) != 480 || bars[1].Values.Value(1) != 600 {
		t.Fatalf("series values not preserved")
	}
}

func TestBuildBarPlotRejectsInvalidChart(t *testing.T) {
	c := sampleBars()
	c.Series[0].Values = []float64{1, 2, 3}
	if _, _, err := buildBarPlot(c, BarSize); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestPlotRendererWritesPNG(t *testing.T) {
	dir := t.TempDir()
	r := &PlotRenderer{BarSize: BarSize, LineSize: LineSize}

	barsPath := filepath.Join(dir, "images", "bars.png")
	if err := r.RenderBars(sampleBars(), barsPath); err != nil {
		t.Fatalf("RenderBars: %v", err)
	}
	if w, h := decodePNGSize(t, barsPath); w != 400 || h != 300 {
		t.Fatalf("bars image %dx%d, want 400x300", w, h)
	}

	linePath := filepath.Join(dir, "images", "line.png")
	if err := r.RenderLine(sampleLine(), linePath); err != nil {
		t.Fatalf("RenderLine: %v", err)
	}
	if w, h := decodePNGSize(t, linePath); w != 1800 || h != 1200 {
		t.Fatalf("line image %dx%d, want 1800x1200", w, h)
	}
}

func TestPlotRendererOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bars.png")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	r := &PlotRenderer{BarSize: BarSize, LineSize: LineSize}
	if err := r.RenderBars(sampleBars(), path); err != nil {
		t.Fatalf("RenderBars: %v", err)
	}
	decodePNGSize(t, path)
}

func TestPlotRendererSinglePointLine(t *testing.T) {
	c := sampleLine()
	c.Labels = []string{"1s"}
	c.Values = []float64{200}
	path := filepath.Join(t.TempDir(), "single.png")
	r := &PlotRenderer{BarSize: BarSize, LineSize: Size{WidthIn: 3, HeightIn: 2, DPI: 50}}
	if err := r.RenderLine(c, path); err != nil {
		t.Fatalf("RenderLine: %v", err)
	}
	if w, h := decodePNGSize(t, path); w != 150 || h != 100 {
		t.Fatalf("image %dx%d, want 150x100", w, h)
	}
}
