package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	logging "hcran-charts/internal/infra/log"

	"go.uber.org/zap"
)

// writePNG creates the parent directory, writes the image via encode and
// rejects empty results. Existing files are overwritten.
func writePNG(path string, encode func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create charts directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to save chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file: %w", err)
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat chart file: %w", err)
	}
	if fileInfo.Size() == 0 {
		os.Remove(path)
		logging.LogError("Chart file is empty after rendering", zap.String("filename", path))
		return fmt.Errorf("chart file is empty after rendering")
	}

	logging.LogDebug("Chart written",
		zap.String("filename", path),
		zap.Int64("fileSize", fileInfo.Size()))
	return nil
}
