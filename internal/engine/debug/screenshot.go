// Package debug provides debug visualization utilities.
package debug

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/terrastream/internal/engine/texture"
)

// ImageWriter saves debug images under timestamped names.
type ImageWriter struct {
	outputDir string
	prefix    string
	format    texture.Format
	now       func() time.Time
}

// NewImageWriter creates a writer saving images as prefix_<timestamp>.<ext>.
func NewImageWriter(outputDir, prefix string, format texture.Format) *ImageWriter {
	if format == "" {
		format = texture.FormatPNG
	}
	return &ImageWriter{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory.
func (w *ImageWriter) SetOutputDir(dir string) {
	w.outputDir = dir
}

// Write encodes img and returns the file name it was saved to.
func (w *ImageWriter) Write(img image.Image) (string, error) {
	// Create output directory if needed
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := w.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := texture.Encode(file, img, w.format); err != nil {
		return "", fmt.Errorf("encoding %s: %w", w.format, err)
	}

	return filename, nil
}

// Filename generates the next file name without saving.
func (w *ImageWriter) Filename() string {
	timestamp := w.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.%s", w.prefix, timestamp, w.format)
	if w.outputDir != "" {
		filename = filepath.Join(w.outputDir, filename)
	}
	return filename
}
