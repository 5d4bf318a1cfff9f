package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logging "hcran-charts/internal/infra/log"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// fontPaths are tried in order when no explicit font is configured
var fontPaths = []string{
	"etc/fonts/Inter-Regular.ttf",
	"etc/fonts/InterVariable.ttf",
	"~/Library/Fonts/Inter-Regular.ttf",
	"/Library/Fonts/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/inter/Inter-Regular.ttf",
	"/usr/local/share/fonts/Inter-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

var (
	goFontOnce sync.Once
	goFont     *truetype.Font
	goFontErr  error
)

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

// resolveFontPath returns the first loadable font file, explicit first.
// An empty result means the embedded Go font is used.
func resolveFontPath(explicit string) string {
	candidates := fontPaths
	if explicit != "" {
		candidates = append([]string{explicit}, fontPaths...)
	}

	for _, fontPath := range candidates {
		expandedPath := expandPath(fontPath)
		fileInfo, err := os.Stat(expandedPath)
		if err != nil || fileInfo.IsDir() {
			if fontPath == explicit {
				logging.LogWarn("Configured font not found", zap.String("path", expandedPath))
			}
			continue
		}
		if _, err := gg.LoadFontFace(expandedPath, 10); err != nil {
			logging.LogWarn("Font file exists but failed to load",
				zap.String("path", expandedPath),
				zap.Error(err))
			continue
		}
		logging.LogDebug("Loaded font",
			zap.String("path", expandedPath),
			zap.Int64("size", fileInfo.Size()))
		return expandedPath
	}

	logging.LogDebug("No font file found, using embedded Go font",
		zap.Int("paths_checked", len(candidates)))
	return ""
}

// loadFace returns a face of the given point size rendered at dpi
func loadFace(path string, points, dpi float64) (font.Face, error) {
	if path != "" {
		return gg.LoadFontFace(path, points*dpi/72)
	}

	goFontOnce.Do(func() {
		goFont, goFontErr = truetype.Parse(goregular.TTF)
	})
	if goFontErr != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", goFontErr)
	}
	return truetype.NewFace(goFont, &truetype.Options{Size: points, DPI: dpi}), nil
}
