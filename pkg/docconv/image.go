package docconv

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Images have no text to extract, so conversion produces a markdown
// summary: dimensions for any image, plus camera metadata for JPEGs
// that carry EXIF data.

func convertJPEG(path string) (string, error) {
	var builder strings.Builder
	if err := writeImageSummary(&builder, path); err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	meta, err := exif.Decode(file)
	if err != nil {
		// No EXIF block is common and not a failure.
		return builder.String(), nil
	}

	for _, field := range []exif.FieldName{exif.Make, exif.Model, exif.DateTime} {
		tag, err := meta.Get(field)
		if err != nil {
			continue
		}
		if value, err := tag.StringVal(); err == nil && value != "" {
			fmt.Fprintf(&builder, "- %s: %s\n", field, strings.TrimSpace(value))
		}
	}
	if lat, long, err := meta.LatLong(); err == nil {
		fmt.Fprintf(&builder, "- Location: %.6f, %.6f\n", lat, long)
	}

	return builder.String(), nil
}

func convertPNG(path string) (string, error) {
	var builder strings.Builder
	if err := writeImageSummary(&builder, path); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func writeImageSummary(builder *strings.Builder, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	fmt.Fprintf(builder, "# %s\n\n", filepath.Base(path))
	fmt.Fprintf(builder, "- Format: %s\n", format)
	fmt.Fprintf(builder, "- Dimensions: %dx%d\n", config.Width, config.Height)
	return nil
}
