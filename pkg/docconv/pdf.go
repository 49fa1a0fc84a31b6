package docconv

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// convertPDF validates the document structure and extracts plain text
// page by page. Validation runs first so a corrupt file fails with a
// clear error instead of a mid-extraction panic; pages that fail text
// extraction are skipped rather than aborting the document.
func convertPDF(ctx context.Context, path string) (string, error) {
	if err := pdfapi.ValidateFile(path, nil); err != nil {
		return "", fmt.Errorf("invalid PDF %s: %w", path, err)
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer file.Close()

	totalPages := reader.NumPage()
	var builder strings.Builder

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if totalPages > 1 {
			fmt.Fprintf(&builder, "## Page %d\n\n", pageNum)
		}
		builder.WriteString(text)
		builder.WriteString("\n\n")
	}

	return strings.TrimRight(builder.String(), "\n") + "\n", nil
}
