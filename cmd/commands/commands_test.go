package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hcran-charts/internal/features/sweep"
	"hcran-charts/internal/infra/fs"
)

// commonFlags pins every flag a test depends on; cobra keeps parsed flag
// values on the shared root command between runs.
var commonFlags = []string{"--log.dir=logs", "--output.images_dir=images", "--sweep.report=", "--render.backend=plot"}

func workspace(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"HCRAN_IMAGES_DIR", "HCRAN_RENDER_BACKEND", "HCRAN_LOG_DIR", "HCRAN_TELEGRAM_ENABLED"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	t.Cleanup(func() { standaloneName = "" })
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeResult(t *testing.T, dir, csv string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "delay_summary.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSweepDelayWithoutDirsPrintsUsage(t *testing.T) {
	workspace(t)

	out, err := execute(t, "sweep-delay")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if !strings.HasPrefix(out, "Usage: hcran-charts sweep-delay <result_dir1> <result_dir2> ...") {
		t.Fatalf("unexpected usage output %q", out)
	}
	for _, dir := range []string{"images", "logs"} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("%s should not be created on usage error", dir)
		}
	}
}

func TestStandaloneUsageName(t *testing.T) {
	workspace(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	err := ExecuteStandalone("sweep-delay", nil)
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "Usage: sweep_delay <result_dir1>") {
		t.Fatalf("unexpected usage output %q", out.String())
	}
}

func TestSweepDelayRendersChart(t *testing.T) {
	workspace(t)
	writeResult(t, "results/1s", "delay_ms\n200\n")
	writeResult(t, "results/0.5s", "delay_ms\n100\n200\n")

	args := append([]string{"sweep-delay"}, commonFlags...)
	args = append(args, "--sweep.report=out/sweep.json", "results/1s/", "results/0.5s/")
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("sweep-delay: %v", err)
	}

	want := "Saved plot to " + filepath.Join("images", "sweep_delay.png")
	if !strings.Contains(out, want) {
		t.Fatalf("output %q missing %q", out, want)
	}
	if info, err := os.Stat(filepath.Join("images", "sweep_delay.png")); err != nil || info.Size() == 0 {
		t.Fatalf("chart not written: %v", err)
	}

	report, err := fs.LoadSweepReport("out/sweep.json")
	if err != nil {
		t.Fatalf("LoadSweepReport: %v", err)
	}
	if len(report.Points) != 2 || report.Points[0].Label != "0.5s" || report.Points[0].MeanDelayMs != 150 {
		t.Fatalf("unexpected report points %+v", report.Points)
	}
}

func TestSweepDelayMissingSummary(t *testing.T) {
	workspace(t)
	if err := os.MkdirAll("results/2s", 0755); err != nil {
		t.Fatal(err)
	}

	args := append([]string{"sweep-delay"}, commonFlags...)
	_, err := execute(t, append(args, "results/2s/")...)

	var missing *sweep.MissingSummaryFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSummaryFileError, got %v", err)
	}
	if _, err := os.Stat(filepath.Join("images", "sweep_delay.png")); !os.IsNotExist(err) {
		t.Fatalf("no chart should be written on failure")
	}
}

func TestCompareWritesCharts(t *testing.T) {
	workspace(t)

	args := append([]string{"plot_metrics"}, commonFlags...)
	if _, err := execute(t, args...); err != nil {
		t.Fatalf("compare: %v", err)
	}
	for _, name := range []string{"AP_power_comparison.png", "diversity_gain_comparison.png", "e2e_delay_comparison.png"} {
		if info, err := os.Stat(filepath.Join("images", name)); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestCompareRejectsArgs(t *testing.T) {
	workspace(t)

	args := append([]string{"compare"}, commonFlags...)
	if _, err := execute(t, append(args, "extra")...); err == nil {
		t.Fatalf("expected error for positional args")
	}
}

func TestSweepDelayHelpMentionsNoSamples(t *testing.T) {
	long := sweepDelayCmd.Long
	if !strings.Contains(long, "no numeric") || !strings.Contains(long, "no samples") {
		t.Fatalf("help should explain the empty-column error, got %q", long)
	}
}

func TestSweepDelayRejectsInfiniteDelay(t *testing.T) {
	workspace(t)
	writeResult(t, "results/1s", "delay_ms\ninf\n100\n")

	args := append([]string{"sweep-delay"}, commonFlags...)
	args = append(args, "--render.backend=canvas", "results/1s/")
	_, err := execute(t, args...)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected non-numeric error on line 2, got %v", err)
	}
	if _, err := os.Stat(filepath.Join("images", "sweep_delay.png")); !os.IsNotExist(err) {
		t.Fatalf("no chart should be written")
	}
}
