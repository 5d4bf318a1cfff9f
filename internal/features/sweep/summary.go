package sweep

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	logging "hcran-charts/internal/infra/log"

	"go.uber.org/zap"
)

const (
	DefaultSummaryFile = "delay_summary.csv"
	DefaultColumn      = "delay_ms"
)

// missingValues are cells read as "no sample" rather than as a parse error
var missingValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// Loader reads per-directory delay summaries
type Loader struct {
	SummaryFile string
	Column      string
}

// DefaultLoader reads delay_summary.csv / delay_ms
func DefaultLoader() Loader {
	return Loader{SummaryFile: DefaultSummaryFile, Column: DefaultColumn}
}

func (l Loader) withDefaults() Loader {
	if l.SummaryFile == "" {
		l.SummaryFile = DefaultSummaryFile
	}
	if l.Column == "" {
		l.Column = DefaultColumn
	}
	return l
}

// LoadMeanDelay returns the mean of delay_ms in dir/delay_summary.csv
func LoadMeanDelay(dir string) (float64, error) {
	mean, _, err := DefaultLoader().MeanDelay(dir)
	return mean, err
}

// MeanDelay returns the arithmetic mean of the delay column in the summary
// file under dir, and how many samples went into it.
func (l Loader) MeanDelay(dir string) (float64, int, error) {
	l = l.withDefaults()
	path := filepath.Join(dir, l.SummaryFile)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, 0, &MissingSummaryFileError{Dir: dir, Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open summary file: %w", err)
	}
	defer f.Close()

	sum, n, err := sumColumn(f, l.Column, path)
	if err != nil {
		return 0, 0, err
	}
	if n == 0 {
		return 0, 0, fmt.Errorf("%s: %w in column %q", path, ErrNoSamples, l.Column)
	}

	mean := sum / float64(n)
	logging.LogDebug("Loaded delay summary",
		zap.String("path", path),
		zap.Int("samples", n),
		zap.Float64("mean_delay_ms", mean))
	return mean, n, nil
}

// sumColumn reads a header-first CSV and sums the named column.
// Rows shorter than the header count as missing values for that column.
func sumColumn(r io.Reader, column, path string) (float64, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return 0, 0, &MissingColumnError{Column: column, Path: path}
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	idx := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0, &MissingColumnError{Column: column, Path: path}
	}

	var sum float64
	var n int
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if idx >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[idx])
		if missingValues[cell] {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			line, _ := cr.FieldPos(idx)
			return 0, 0, fmt.Errorf("%s line %d: non-numeric %s value %q", path, line, column, cell)
		}
		sum += v
		n++
	}
	return sum, n, nil
}
