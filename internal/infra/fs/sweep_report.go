package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hcran-charts/internal/features/sweep"
)

// ReportPoint is one directory of a saved sweep
type ReportPoint struct {
	Label       string  `json:"label"`
	Dir         string  `json:"dir"`
	MeanDelayMs float64 `json:"mean_delay_ms"`
	Samples     int     `json:"samples"`
}

// SweepReport is the JSON companion of the sweep chart
type SweepReport struct {
	GeneratedAt string        `json:"generated_at"`
	Chart       string        `json:"chart,omitempty"`
	Points      []ReportPoint `json:"points"`
}

func NewSweepReport(chartPath string, points []sweep.Point, now time.Time) *SweepReport {
	report := &SweepReport{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Chart:       chartPath,
		Points:      make([]ReportPoint, len(points)),
	}
	for i, p := range points {
		report.Points[i] = ReportPoint{
			Label:       p.Label,
			Dir:         p.Dir,
			MeanDelayMs: p.Mean,
			Samples:     p.Samples,
		}
	}
	return report
}

// SaveSweepReport writes the report as indented JSON, creating parent dirs
func SaveSweepReport(path string, report *SweepReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sweep report: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to save sweep report: %w", err)
	}
	return nil
}

func LoadSweepReport(path string) (*SweepReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep report file: %w", err)
	}

	var report SweepReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sweep report: %w", err)
	}

	return &report, nil
}
