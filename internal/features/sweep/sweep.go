package sweep

// Delay sweep: one mean E2E delay per result directory, ordered by the
// sensing period encoded in the directory name, rendered as a line chart

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"hcran-charts/internal/chart"
	logging "hcran-charts/internal/infra/log"

	"go.uber.org/zap"
)

const (
	ChartTitle = "Delay vs. RRH Sensing Interval"
	XLabel     = "Sensing period"
	YLabel     = "Mean E2E delay (ms)"
	FileName   = "sweep_delay.png"
)

// Point is the reduced result of one directory
type Point struct {
	Label   string
	Dir     string
	Mean    float64
	Samples int
}

// Label is the last element of the cleaned directory path ("results/2s/" -> "2s")
func Label(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

// ParsePeriod reads a label such as "0.5s" as seconds. Every trailing 's'
// is stripped before parsing. Only decimal notation is accepted; single
// underscores between digits are allowed ("1_0s" is 10).
func ParsePeriod(label string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimRight(label, "s"))
	if isHexFloat(trimmed) {
		return 0, fmt.Errorf("label %q is not a sensing period: hexadecimal notation", label)
	}
	digits, ok := dropDigitSeparators(trimmed)
	if !ok {
		return 0, fmt.Errorf("label %q is not a sensing period: misplaced underscore", label)
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, fmt.Errorf("label %q is not a sensing period: %w", label, err)
	}
	return v, nil
}

func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// dropDigitSeparators removes underscores that sit between two digits and
// reports false for any other underscore.
func dropDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

// Collect loads every directory in order. The first failure aborts.
func (l Loader) Collect(dirs []string) ([]Point, error) {
	points := make([]Point, 0, len(dirs))
	for _, dir := range dirs {
		mean, n, err := l.MeanDelay(dir)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Label: Label(dir), Dir: dir, Mean: mean, Samples: n})
	}
	return points, nil
}

// SortByPeriod orders points by ParsePeriod(label), ascending and stable.
// If any label does not parse the input order is kept for all points.
func SortByPeriod(points []Point) []Point {
	type keyed struct {
		period float64
		point  Point
	}

	keys := make([]keyed, len(points))
	for i, p := range points {
		period, err := ParsePeriod(p.Label)
		if err != nil {
			logging.LogDebug("Keeping command-line order", zap.String("label", p.Label))
			return slices.Clone(points)
		}
		keys[i] = keyed{period: period, point: p}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int { return cmp.Compare(a.period, b.period) })

	sorted := make([]Point, len(keys))
	for i, k := range keys {
		sorted[i] = k.point
	}
	return sorted
}

// Chart builds the line chart for already ordered points
func Chart(points []Point) chart.Line {
	c := chart.Line{
		Title:    ChartTitle,
		XLabel:   XLabel,
		YLabel:   YLabel,
		Grid:     true,
		FileName: FileName,
		Labels:   make([]string, len(points)),
		Values:   make([]float64, len(points)),
	}
	for i, p := range points {
		c.Labels[i] = p.Label
		c.Values[i] = p.Mean
	}
	return c
}

// Result is the outcome of Run
type Result struct {
	Path   string
	Points []Point
}

// Run collects, orders and renders the sweep into imagesDir/sweep_delay.png
func (l Loader) Run(dirs []string, r chart.Renderer, imagesDir string) (*Result, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no result directories given")
	}
	start := time.Now()

	points, err := l.Collect(dirs)
	if err != nil {
		return nil, err
	}
	points = SortByPeriod(points)

	c := Chart(points)
	out := filepath.Join(imagesDir, c.FileName)
	if err := r.RenderLine(c, out); err != nil {
		return nil, fmt.Errorf("failed to render sweep chart: %w", err)
	}

	logging.LogSuccess("Sweep chart generated",
		zap.String("filename", out),
		zap.Int("pointsCount", len(points)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	return &Result{Path: out, Points: points}, nil
}
