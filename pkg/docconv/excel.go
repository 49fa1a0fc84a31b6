package docconv

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxWorkbookRows caps the rows rendered per sheet so a huge workbook
// cannot produce an unbounded result.
const maxWorkbookRows = 1000

// convertWorkbook renders every sheet of an Excel workbook as a
// markdown table under a sheet-name heading. The first row is treated
// as the header row.
func convertWorkbook(path string) (string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer file.Close()

	var builder strings.Builder

	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		if len(rows) > maxWorkbookRows+1 {
			rows = rows[:maxWorkbookRows+1]
		}

		fmt.Fprintf(&builder, "## %s\n\n", sheet)
		writeMarkdownTable(&builder, rows)
		builder.WriteString("\n")
	}

	if builder.Len() == 0 {
		return "", fmt.Errorf("workbook %s has no readable sheets", path)
	}
	return builder.String(), nil
}

// writeMarkdownTable renders rows as a markdown table, padding short
// rows to the header width.
func writeMarkdownTable(builder *strings.Builder, rows [][]string) {
	width := len(rows[0])
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return
	}

	writeTableRow(builder, rows[0], width)

	builder.WriteString("|")
	for i := 0; i < width; i++ {
		builder.WriteString(" --- |")
	}
	builder.WriteString("\n")

	for _, row := range rows[1:] {
		writeTableRow(builder, row, width)
	}
}

func writeTableRow(builder *strings.Builder, row []string, width int) {
	builder.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(row) {
			cell = strings.ReplaceAll(row[i], "|", "\\|")
			cell = strings.ReplaceAll(cell, "\n", " ")
		}
		fmt.Fprintf(builder, " %s |", cell)
	}
	builder.WriteString("\n")
}
