package vaultops

import (
	"context"
	"fmt"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/vault"
)

// NewCreateFolderTool creates a vault folder. The backing store has no
// folder primitive, so creation writes and deletes a placeholder file.
func NewCreateFolderTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "create_folder",
		Description: "Create a new folder in the vault.",
		Fields: []tools.Field{
			{Name: "folderpath", Type: "string", Required: true},
		},
		Handler: tools.Handler{Unary: func(ctx context.Context, folderPath string) string {
			if folderPath == "" {
				return "operation failed: folderpath cannot be empty"
			}
			if err := client.CreateFolder(ctx, folderPath); err != nil {
				return failure(err)
			}
			return fmt.Sprintf("created folder %s", folderPath)
		}},
	}
}

// NewDeleteFolderTool removes a vault folder.
func NewDeleteFolderTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "delete_folder",
		Description: "Delete a folder from the vault. This cannot be undone.",
		Fields: []tools.Field{
			{Name: "folderpath", Type: "string", Required: true},
		},
		Handler: tools.Handler{Unary: func(ctx context.Context, folderPath string) string {
			if folderPath == "" {
				return "operation failed: folderpath cannot be empty"
			}
			if err := client.DeleteFolder(ctx, folderPath); err != nil {
				return failure(err)
			}
			return fmt.Sprintf("deleted folder %s", folderPath)
		}},
	}
}
