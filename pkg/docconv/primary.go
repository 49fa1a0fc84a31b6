package docconv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// DocumentConverter is the primary converter. It dispatches on the
// source extension to a format-specific extractor and emits markdown.
type DocumentConverter struct{}

// NewDocumentConverter builds the primary converter.
func NewDocumentConverter() *DocumentConverter {
	return &DocumentConverter{}
}

// Convert extracts markdown from the file at path.
func (c *DocumentConverter) Convert(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ".pdf":
		return convertPDF(ctx, path)
	case ".xlsx":
		return convertWorkbook(path)
	case ".docx":
		return convertWordDocument(path)
	case ".pptx":
		return convertPresentation(path)
	case ".html", ".htm":
		return convertHTML(path)
	case ".jpg":
		return convertJPEG(path)
	case ".png":
		return convertPNG(path)
	case ".doc":
		return "", &MissingDependencyError{Component: "legacy Word (.doc) converter"}
	case ".xls":
		return "", &MissingDependencyError{Component: "legacy Excel (.xls) converter"}
	case ".ppt":
		return "", &MissingDependencyError{Component: "legacy PowerPoint (.ppt) converter"}
	default:
		return "", &UnsupportedTypeError{Path: path, Ext: filepath.Ext(path)}
	}
}
