package sweep

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSummary(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, DefaultSummaryFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMeanDelay(t *testing.T) {
	dir := t.TempDir()
	writeSummary(t, dir, "run,delay_ms\n1,100\n2,200\n3,300\n")

	mean, err := LoadMeanDelay(dir)
	if err != nil {
		t.Fatalf("LoadMeanDelay: %v", err)
	}
	if mean != 200.0 {
		t.Fatalf("mean = %v, want 200", mean)
	}
}

func TestLoadMeanDelayMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMeanDelay(dir)
	if err == nil {
		t.Fatalf("expected error for missing summary file")
	}
	var missing *MissingSummaryFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSummaryFileError, got %T: %v", err, err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing summary should match fs.ErrNotExist")
	}
	wantPath := filepath.Join(dir, DefaultSummaryFile)
	if missing.Path != wantPath || !strings.Contains(err.Error(), wantPath) {
		t.Fatalf("error should reference %s, got %v", wantPath, err)
	}
}

func TestLoadMeanDelaySummaryIsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, DefaultSummaryFile), 0755); err != nil {
		t.Fatal(err)
	}
	var missing *MissingSummaryFileError
	if _, err := LoadMeanDelay(dir); !errors.As(err, &missing) {
		t.Fatalf("expected MissingSummaryFileError, got %v", err)
	}
}

func TestLoadMeanDelayMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeSummary(t, dir, "run,latency\n1,100\n")

	_, err := LoadMeanDelay(dir)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %T: %v", err, err)
	}
	if missing.Column != "delay_ms" || !strings.Contains(err.Error(), "delay_ms") {
		t.Fatalf("error should reference delay_ms, got %v", err)
	}
}

func TestLoadMeanDelayEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     float64
		wantErr  error
		errMatch string
	}{
		{name: "extra columns ignored", content: "delay_ms,jitter_ms\n10,1\n30,3\n", want: 20},
		{name: "empty cells skipped", content: "id,delay_ms\n1,10\n2,\n3,NaN\n4,20\n", want: 15},
		{name: "short rows skipped", content: "id,delay_ms\n1\n2,40\n", want: 40},
		{name: "whitespace around numbers", content: "delay_ms\n 5 \n15\n", want: 10},
		{name: "byte order mark", content: "\ufeffdelay_ms,id\n7,1\n9,2\n", want: 8},
		{name: "no samples", content: "delay_ms\n", wantErr: ErrNoSamples},
		{name: "non numeric", content: "delay_ms\n10\nabc\n", errMatch: "line 3"},
		{name: "infinite value", content: "delay_ms\ninf\n100\n", errMatch: "line 2"},
		{name: "upper case nan", content: "delay_ms\n100\nNAN\n", errMatch: "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSummary(t, dir, tt.content)
			mean, err := LoadMeanDelay(dir)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.errMatch != "":
				if err == nil || !strings.Contains(err.Error(), tt.errMatch) {
					t.Fatalf("expected error containing %q, got %v", tt.errMatch, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if mean != tt.want {
					t.Fatalf("mean = %v, want %v", mean, tt.want)
				}
			}
		})
	}
}

func TestLoadMeanDelayEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeSummary(t, dir, "")
	var missing *MissingColumnError
	if _, err := LoadMeanDelay(dir); !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError for empty file, got %v", err)
	}
}

func TestLoaderCustomNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "latency.csv"), []byte("lat\n1\n3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	l := Loader{SummaryFile: "latency.csv", Column: "lat"}
	mean, n, err := l.MeanDelay(dir)
	if err != nil {
		t.Fatalf("MeanDelay: %v", err)
	}
	if mean != 2 || n != 2 {
		t.Fatalf("got mean %v over %d samples, want 2 over 2", mean, n)
	}
}
