package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
)

// Dark theme used by the canvas backend
var (
	canvasBackground = color.Black
	canvasText       = color.White
	canvasGrid       = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

const (
	titleFontSize  = 11.0
	labelFontSize  = 9.0
	tickFontSize   = 8.0
	legendFontSize = 8.0

	marginLeft   = 0.16
	marginRight  = 0.04
	marginTop    = 0.13
	marginBottom = 0.17

	yTickTarget = 5
)

// CanvasRenderer draws charts by hand with fogleman/gg
type CanvasRenderer struct {
	BarSize  Size
	LineSize Size
	FontPath string

	fontOnce sync.Once
	fontFile string
}

// canvas wraps a gg context with the geometry shared by both chart kinds
type canvas struct {
	dc                       *gg.Context
	dpi                      float64
	fontFile                 string
	left, right, top, bottom float64
}

func (r *CanvasRenderer) newCanvas(size Size) (*canvas, error) {
	r.fontOnce.Do(func() { r.fontFile = resolveFontPath(r.FontPath) })

	w, h := size.Pixels()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(canvasBackground)
	dc.Clear()

	return &canvas{
		dc:       dc,
		dpi:      size.DPI,
		fontFile: r.fontFile,
		left:     float64(w) * marginLeft,
		right:    float64(w) * (1 - marginRight),
		top:      float64(h) * marginTop,
		bottom:   float64(h) * (1 - marginBottom),
	}, nil
}

// px converts typographic points to pixels at the canvas DPI
func (c *canvas) px(points float64) float64 { return points * c.dpi / 72 }

func (c *canvas) setFont(points float64) error {
	face, err := loadFace(c.fontFile, points, c.dpi)
	if err != nil {
		return err
	}
	c.dc.SetFontFace(face)
	return nil
}

func (c *canvas) drawTitle(title string) error {
	if err := c.setFont(titleFontSize); err != nil {
		return err
	}
	c.dc.SetColor(canvasText)
	c.dc.DrawStringAnchored(title, (c.left+c.right)/2, c.top/2, 0.5, 0.5)
	return nil
}

func (c *canvas) drawYLabel(label string) error {
	if label == "" {
		return nil
	}
	if err := c.setFont(labelFontSize); err != nil {
		return err
	}
	x := c.px(labelFontSize)
	y := (c.top + c.bottom) / 2
	c.dc.Push()
	c.dc.RotateAbout(gg.Radians(-90), x, y)
	c.dc.SetColor(canvasText)
	c.dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
	c.dc.Pop()
	return nil
}

func (c *canvas) drawXLabel(label string) error {
	if label == "" {
		return nil
	}
	if err := c.setFont(labelFontSize); err != nil {
		return err
	}
	c.dc.SetColor(canvasText)
	h := float64(c.dc.Height())
	c.dc.DrawStringAnchored(label, (c.left+c.right)/2, h-c.px(labelFontSize), 0.5, 0.5)
	return nil
}

// yPos maps a data value into the plot area
func (c *canvas) yPos(v, lo, hi float64) float64 {
	return c.bottom - (v-lo)/(hi-lo)*(c.bottom-c.top)
}

// drawYAxis draws dashed horizontal grid lines with value labels
func (c *canvas) drawYAxis(lo, hi, step float64) error {
	ticks, err := yTicks(lo, hi, step)
	if err != nil {
		return err
	}
	if err := c.setFont(tickFontSize); err != nil {
		return err
	}
	c.dc.SetLineWidth(math.Max(1, c.px(0.5)))
	for _, v := range ticks {
		y := c.yPos(v, lo, hi)
		c.dc.SetColor(canvasGrid)
		c.dc.SetDash(c.px(3), c.px(2))
		c.dc.DrawLine(c.left, y, c.right, y)
		c.dc.Stroke()
		c.dc.SetDash()

		c.dc.SetColor(canvasText)
		c.dc.DrawStringAnchored(formatTick(v), c.left-c.px(4), y, 1, 0.5)
	}

	c.dc.SetColor(canvasText)
	c.dc.SetLineWidth(math.Max(1, c.px(1)))
	c.dc.DrawLine(c.left, c.top, c.left, c.bottom)
	c.dc.Stroke()
	c.dc.DrawLine(c.left, c.bottom, c.right, c.bottom)
	c.dc.Stroke()
	return nil
}

// drawCategory writes a category label centred under x
func (c *canvas) drawCategory(label string, x float64) {
	c.dc.SetColor(canvasText)
	tick := c.px(3)
	c.dc.DrawLine(x, c.bottom, x, c.bottom+tick)
	c.dc.Stroke()
	c.dc.DrawStringAnchored(label, x, c.bottom+tick+c.px(tickFontSize)*0.8, 0.5, 0.5)
}

func (c *canvas) drawLegend(names []string) error {
	if err := c.setFont(legendFontSize); err != nil {
		return err
	}
	swatch := c.px(legendFontSize) * 0.8
	rowHeight := c.px(legendFontSize) * 1.4

	widest := 0.0
	for _, name := range names {
		if w, _ := c.dc.MeasureString(name); w > widest {
			widest = w
		}
	}
	x := c.right - widest - swatch*2
	y := c.top + rowHeight/2
	for i, name := range names {
		c.dc.SetColor(seriesColor(i))
		c.dc.DrawRectangle(x, y-swatch/2, swatch, swatch)
		c.dc.Fill()
		c.dc.SetColor(canvasText)
		c.dc.DrawStringAnchored(name, x+swatch*1.5, y, 0, 0.5)
		y += rowHeight
	}
	return nil
}

func (c *canvas) save(path string) error {
	return writePNG(path, func(w io.Writer) error {
		return c.dc.EncodePNG(w)
	})
}

func (r *CanvasRenderer) RenderBars(ch GroupedBars, path string) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	c, err := r.newCanvas(r.BarSize)
	if err != nil {
		return err
	}

	lo, hi, step := niceRange(0, ch.MaxValue(), yTickTarget)
	if lo > 0 {
		lo = 0
	}
	if err := c.drawTitle(ch.Title); err != nil {
		return err
	}
	if err := c.drawYLabel(ch.YLabel); err != nil {
		return err
	}
	if err := c.drawYAxis(lo, hi, step); err != nil {
		return err
	}

	slot := (c.right - c.left) / float64(ch.TickCount())
	groupWidth := slot * groupFill
	barWidth := groupWidth / float64(ch.BarsPerCategory())

	for i, category := range ch.Categories {
		x0 := c.left + slot*float64(i) + (slot-groupWidth)/2
		for j, s := range ch.Series {
			top := c.yPos(s.Values[i], lo, hi)
			c.dc.SetColor(seriesColor(j))
			c.dc.DrawRectangle(x0+barWidth*float64(j), top, barWidth, c.bottom-top)
			c.dc.Fill()
		}
		c.drawCategory(category, c.left+slot*(float64(i)+0.5))
	}

	names := make([]string, len(ch.Series))
	for i, s := range ch.Series {
		names[i] = s.Name
	}
	if err := c.drawLegend(names); err != nil {
		return err
	}

	return c.save(path)
}

func (r *CanvasRenderer) RenderLine(ch Line, path string) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	c, err := r.newCanvas(r.LineSize)
	if err != nil {
		return err
	}

	min, max := ch.Values[0], ch.Values[0]
	for _, v := range ch.Values[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	lo, hi, step := niceRange(min, max, yTickTarget)

	if err := c.drawTitle(ch.Title); err != nil {
		return err
	}
	if err := c.drawYLabel(ch.YLabel); err != nil {
		return err
	}
	if err := c.drawXLabel(ch.XLabel); err != nil {
		return err
	}
	if err := c.drawYAxis(lo, hi, step); err != nil {
		return err
	}

	slot := (c.right - c.left) / float64(len(ch.Values))
	xs := make([]float64, len(ch.Values))
	for i := range ch.Values {
		xs[i] = c.left + slot*(float64(i)+0.5)
	}

	if ch.Grid {
		c.dc.SetColor(canvasGrid)
		c.dc.SetLineWidth(math.Max(1, c.px(0.5)))
		c.dc.SetDash(c.px(3), c.px(2))
		for _, x := range xs {
			c.dc.DrawLine(x, c.top, x, c.bottom)
			c.dc.Stroke()
		}
		c.dc.SetDash()
	}

	c.dc.SetColor(seriesColor(0))
	c.dc.SetLineWidth(c.px(1.5))
	for i := 1; i < len(xs); i++ {
		c.dc.DrawLine(xs[i-1], c.yPos(ch.Values[i-1], lo, hi), xs[i], c.yPos(ch.Values[i], lo, hi))
		c.dc.Stroke()
	}
	for i, x := range xs {
		c.dc.DrawCircle(x, c.yPos(ch.Values[i], lo, hi), c.px(3))
		c.dc.Fill()
	}

	if err := c.setFont(tickFontSize); err != nil {
		return err
	}
	c.dc.SetLineWidth(math.Max(1, c.px(1)))
	for i, label := range ch.Labels {
		c.drawCategory(label, xs[i])
	}

	return c.save(path)
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
