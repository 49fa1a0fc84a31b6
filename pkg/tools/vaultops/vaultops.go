// Package vaultops declares the vault tools: every file, search,
// periodic-note, and folder operation the reasoning loop may invoke.
// Each constructor returns a tools.Spec whose handler renders both
// results and failures as strings; a failed operation produces an
// "operation failed: ..." message rather than an error the loop would
// have to unwind.
package vaultops

import (
	"fmt"
	"strconv"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/vault"
)

// All returns every vault tool in catalogue order.
func All(client *vault.Client) []tools.Spec {
	return []tools.Spec{
		NewListFilesTool(client),
		NewGetFileContentsTool(client),
		NewGetBatchFileContentsTool(client),
		NewSearchFilesTool(client),
		NewAppendContentTool(client),
		NewPutContentTool(client),
		NewDeleteFileTool(client),
		NewSearchJSONTool(client),
		NewGetPeriodicNoteTool(client),
		NewGetRecentPeriodicNotesTool(client),
		NewGetRecentChangesTool(client),
		NewInsertAtLineTool(client),
		NewDeleteLineTool(client),
		NewCreateFolderTool(client),
		NewDeleteFolderTool(client),
	}
}

// failure renders an operation error for the reasoning loop.
func failure(err error) string {
	return fmt.Sprintf("operation failed: %v", err)
}

// parsePositiveInt parses a tool argument that must be a positive
// integer, naming the argument in the failure message.
func parsePositiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, value)
	}
	return n, nil
}
