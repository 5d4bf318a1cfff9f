package chart

// Chart model shared by both rendering backends
// GroupedBars - one bar per series inside every category slot
// Line - one point per label, connected in order

import (
	"fmt"
	"math"
	"strings"
)

// Series is a named set of values, one per category
type Series struct {
	Name   string
	Values []float64
}

// GroupedBars describes a grouped bar chart
type GroupedBars struct {
	Title      string
	YLabel     string
	Categories []string
	Series     []Series
	FileName   string
}

// Validate checks that every series has one value per category
func (c GroupedBars) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("chart %q: no categories", c.Title)
	}
	if len(c.Series) == 0 {
		return fmt.Errorf("chart %q: no series", c.Title)
	}
	for _, s := range c.Series {
		if len(s.Values) != len(c.Categories) {
			return fmt.Errorf("chart %q: series %q has %d values for %d categories",
				c.Title, s.Name, len(s.Values), len(c.Categories))
		}
		if err := checkFinite(c.Title, s.Values); err != nil {
			return err
		}
	}
	return nil
}

// checkFinite rejects NaN and infinite values
func checkFinite(title string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("chart %q: value %d is %v", title, i, v)
		}
	}
	return nil
}

// TickCount is the number of category ticks on the x axis
func (c GroupedBars) TickCount() int { return len(c.Categories) }

// BarsPerCategory is the number of bars drawn in each category slot
func (c GroupedBars) BarsPerCategory() int { return len(c.Series) }

// MaxValue returns the largest value across all series (0 for empty charts)
func (c GroupedBars) MaxValue() float64 {
	max := 0.0
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// Line describes a single-series line chart over categorical x labels
type Line struct {
	Title    string
	XLabel   string
	YLabel   string
	Labels   []string
	Values   []float64
	Grid     bool
	FileName string
}

func (c Line) Validate() error {
	if len(c.Labels) == 0 {
		return fmt.Errorf("chart %q: no points", c.Title)
	}
	if len(c.Labels) != len(c.Values) {
		return fmt.Errorf("chart %q: %d labels for %d values", c.Title, len(c.Labels), len(c.Values))
	}
	return checkFinite(c.Title, c.Values)
}

// Size is the output image size in inches and dots per inch
type Size struct {
	WidthIn  float64
	HeightIn float64
	DPI      float64
}

// Pixels returns the rounded pixel dimensions
func (s Size) Pixels() (int, int) {
	return int(s.WidthIn*s.DPI + 0.5), int(s.HeightIn*s.DPI + 0.5)
}

var (
	// BarSize matches a 4x3 inch figure saved at 100 dpi
	BarSize = Size{WidthIn: 4, HeightIn: 3, DPI: 100}
	// LineSize matches a 6x4 inch figure saved at 300 dpi
	LineSize = Size{WidthIn: 6, HeightIn: 4, DPI: 300}
)

// Renderer draws charts into PNG files
type Renderer interface {
	RenderBars(c GroupedBars, path string) error
	RenderLine(c Line, path string) error
}

const (
	BackendPlot   = "plot"
	BackendCanvas = "canvas"
)

// Options configure NewRenderer
type Options struct {
	Backend  string
	BarSize  Size
	LineSize Size
	FontPath string // canvas only; empty means search the usual locations
}

// NewRenderer picks a backend by name; empty name means BackendPlot
func NewRenderer(opts Options) (Renderer, error) {
	if opts.BarSize == (Size{}) {
		opts.BarSize = BarSize
	}
	if opts.LineSize == (Size{}) {
		opts.LineSize = LineSize
	}
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendPlot:
		return &PlotRenderer{BarSize: opts.BarSize, LineSize: opts.LineSize}, nil
	case BackendCanvas:
		return &CanvasRenderer{BarSize: opts.BarSize, LineSize: opts.LineSize, FontPath: opts.FontPath}, nil
	default:
		return nil, fmt.Errorf("unknown render backend %q (want %q or %q)", opts.Backend, BackendPlot, BackendCanvas)
	}
}
