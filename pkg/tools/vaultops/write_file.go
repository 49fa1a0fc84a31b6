package vaultops

import (
	"context"
	"fmt"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/vault"
)

// NewAppendContentTool appends markdown to a vault file, creating it if
// absent.
func NewAppendContentTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "append_content",
		Description: "Append content to the end of a vault file, creating the file if it does not exist.",
		Fields: []tools.Field{
			{Name: "filepath", Type: "string", Required: true},
			{Name: "content", Type: "string", Required: true},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, filePath, content string) string {
			if err := client.AppendContent(ctx, filePath, content); err != nil {
				return failure(err)
			}
			return fmt.Sprintf("appended content to %s", filePath)
		}},
	}
}

// NewPutContentTool replaces a vault file's content entirely.
func NewPutContentTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "put_content",
		Description: "Create a vault file or overwrite its entire content.",
		Fields: []tools.Field{
			{Name: "filepath", Type: "string", Required: true},
			{Name: "content", Type: "string", Required: true},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, filePath, content string) string {
			if err := client.PutContent(ctx, filePath, content); err != nil {
				return failure(err)
			}
			return fmt.Sprintf("wrote content to %s", filePath)
		}},
	}
}

// NewDeleteFileTool removes a vault file.
func NewDeleteFileTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "delete_file",
		Description: "Delete a file from the vault. This cannot be undone.",
		Fields: []tools.Field{
			{Name: "filepath", Type: "string", Required: true},
		},
		Handler: tools.Handler{Unary: func(ctx context.Context, filePath string) string {
			if filePath == "" {
				return "operation failed: filepath cannot be empty"
			}
			if err := client.DeleteFile(ctx, filePath); err != nil {
				return failure(err)
			}
			return fmt.Sprintf("deleted %s", filePath)
		}},
	}
}
