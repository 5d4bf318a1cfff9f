package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// seriesColors cycles through the usual categorical palette (blue, orange, ...)
var seriesColors = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
}

func seriesColor(i int) color.Color { return seriesColors[i%len(seriesColors)] }

const (
	// share of a category slot covered by its bar group
	groupFill = 0.8
	// share of the figure width used by the data area
	plotAreaFill = 0.8
)

// PlotRenderer renders charts with gonum.org/v1/plot
type PlotRenderer struct {
	BarSize  Size
	LineSize Size
}

func (r *PlotRenderer) RenderBars(c GroupedBars, path string) error {
	p, _, err := buildBarPlot(c, r.BarSize)
	if err != nil {
		return err
	}
	return savePlot(p, r.BarSize, path)
}

func (r *PlotRenderer) RenderLine(c Line, path string) error {
	p, err := buildLinePlot(c)
	if err != nil {
		return err
	}
	return savePlot(p, r.LineSize, path)
}

// buildBarPlot lays out one BarChart per series, shifted so each category
// slot holds the whole group centred on its tick.
func buildBarPlot(c GroupedBars, size Size) (*plot.Plot, []*plotter.BarChart, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.Y.Label.Text = c.YLabel
	p.Y.Min = 0
	p.Legend.Top = true

	slot := vg.Length(size.WidthIn) * vg.Inch * plotAreaFill / vg.Length(len(c.Categories))
	barWidth := slot * groupFill / vg.Length(len(c.Series))
	groupWidth := barWidth * vg.Length(len(c.Series)-1)

	bars := make([]*plotter.BarChart, 0, len(c.Series))
	for i, s := range c.Series {
		bc, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
		if err != nil {
			return nil, nil, fmt.Errorf("chart %q: series %q: %w", c.Title, s.Name, err)
		}
		bc.Offset = barWidth*vg.Length(i) - groupWidth/2
		bc.Color = seriesColor(i)
		bc.LineStyle.Width = 0

		p.Add(bc)
		p.Legend.Add(s.Name, bc)
		bars = append(bars, bc)
	}
	p.NominalX(c.Categories...)

	return p, bars, nil
}

func buildLinePlot(c Line) (*plot.Plot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	if c.Grid {
		p.Add(plotter.NewGrid())
	}

	pts := make(plotter.XYs, len(c.Values))
	for i, v := range c.Values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", c.Title, err)
	}
	line.Color = seriesColor(0)
	line.Width = vg.Points(1.5)
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(3)
	points.Color = seriesColor(0)

	p.Add(line, points)
	p.NominalX(c.Labels...)

	return p, nil
}

func savePlot(p *plot.Plot, size Size, path string) error {
	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(size.WidthIn)*vg.Inch, vg.Length(size.HeightIn)*vg.Inch),
		vgimg.UseDPI(int(size.DPI)),
	)
	p.Draw(draw.New(canvas))

	return writePNG(path, func(w io.Writer) error {
		_, err := vgimg.PngCanvas{Canvas: canvas}.WriteTo(w)
		return err
	})
}
