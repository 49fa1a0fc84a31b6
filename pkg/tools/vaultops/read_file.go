package vaultops

import (
	"context"
	"strings"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/vault"
)

// NewGetFileContentsTool reads one vault file.
func NewGetFileContentsTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "get_file_contents",
		Description: "Read the full content of a single file in the vault.",
		Fields: []tools.Field{
			{Name: "filepath", Type: "string", Required: true},
		},
		Handler: tools.Handler{Unary: func(ctx context.Context, filePath string) string {
			if filePath == "" {
				return "operation failed: filepath cannot be empty"
			}
			content, err := client.GetFileContents(ctx, filePath)
			if err != nil {
				return failure(err)
			}
			return content
		}},
	}
}

// NewGetBatchFileContentsTool reads several vault files in one call. A
// file that fails to read contributes an inline error note instead of
// aborting the batch.
func NewGetBatchFileContentsTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "get_batch_file_contents",
		Description: "Read the contents of multiple vault files at once, concatenated with per-file headers. Files that cannot be read are noted inline.",
		Fields: []tools.Field{
			{Name: "filepaths", Type: "string", Required: true},
		},
		Handler: tools.Handler{Unary: func(ctx context.Context, rawPaths string) string {
			var paths []string
			for _, p := range strings.Split(rawPaths, ",") {
				if p = strings.TrimSpace(p); p != "" {
					paths = append(paths, p)
				}
			}
			if len(paths) == 0 {
				return "operation failed: no file paths given (expected a comma-separated list)"
			}

			content, err := client.GetBatchFileContents(ctx, paths)
			if err != nil {
				return failure(err)
			}
			return content
		}},
	}
}
