package vaultops

import (
	"context"
	"strings"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/vault"
)

// NewListFilesTool lists vault entries. With no argument it lists the
// vault root; with a directory path it lists that directory.
func NewListFilesTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "list_files_in_vault",
		Description: "List the files and folders in the vault root, or in a specific folder when a path is given.",
		Fields: []tools.Field{
			{Name: "dirpath", Type: "string"},
		},
		Handler: tools.Handler{Unary: func(ctx context.Context, dirPath string) string {
			var (
				files []string
				err   error
			)
			if dirPath == "" {
				files, err = client.ListVault(ctx)
			} else {
				files, err = client.ListDir(ctx, dirPath)
			}
			if err != nil {
				return failure(err)
			}
			if len(files) == 0 {
				return "no files found"
			}
			return strings.Join(files, "\n")
		}},
	}
}
