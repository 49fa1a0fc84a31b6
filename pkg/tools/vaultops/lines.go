package vaultops

import (
	"context"
	"fmt"
	"strings"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/vault"
)

// NewInsertAtLineTool inserts content at a 1-based line of a vault
// file. The second argument packs the line number and the content as
// "{line} {content}".
func NewInsertAtLineTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "insert_at_line",
		Description: `Insert content at a specific line of a vault file. The second argument is the line number followed by a space and the content, e.g. "notes.md|3 new text".`,
		Fields: []tools.Field{
			{Name: "filepath", Type: "string", Required: true},
			{Name: "line_and_content", Type: "string", Required: true},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, filePath, lineAndContent string) string {
			parts := strings.SplitN(lineAndContent, " ", 2)
			if len(parts) != 2 {
				return `operation failed: expected "{line} {content}" as the second argument`
			}
			line, err := parsePositiveInt("line", parts[0])
			if err != nil {
				return failure(err)
			}

			if err := client.PatchContentAtLine(ctx, filePath, line, parts[1], vault.PatchInsert); err != nil {
				return failure(err)
			}
			return fmt.Sprintf("inserted content at line %d of %s", line, filePath)
		}},
	}
}

// NewDeleteLineTool removes a single 1-based line from a vault file.
// The removal is emulated with a read-modify-write of the whole file,
// so a concurrent external edit between read and write can be lost.
func NewDeleteLineTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "delete_line",
		Description: "Delete a specific line (1-based) from a vault file.",
		Fields: []tools.Field{
			{Name: "filepath", Type: "string", Required: true},
			{Name: "line", Type: "integer", Required: true},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, filePath, rawLine string) string {
			line, err := parsePositiveInt("line", rawLine)
			if err != nil {
				return failure(err)
			}

			if err := client.PatchContentAtLine(ctx, filePath, line, "", vault.PatchDelete); err != nil {
				return failure(err)
			}
			return fmt.Sprintf("deleted line %d of %s", line, filePath)
		}},
	}
}
