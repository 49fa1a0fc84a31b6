package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const markdownContentType = "text/markdown"

// placeholderNote is written and immediately deleted to materialize a
// folder on a backing store that has no directory primitive.
const placeholderNote = ".placeholder.md"

// ListVault lists the files at the vault root.
func (c *Client) ListVault(ctx context.Context) ([]string, error) {
	return c.listFiles(ctx, vaultPath(""))
}

// ListDir lists the files under a directory of the vault.
func (c *Client) ListDir(ctx context.Context, dirPath string) ([]string, error) {
	return c.listFiles(ctx, vaultPath(strings.TrimSuffix(dirPath, "/")+"/"))
}

func (c *Client) listFiles(ctx context.Context, path string) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	var listing struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("request failed: unexpected listing response: %v", err)
	}
	return listing.Files, nil
}

// GetFileContents returns the raw content of a vault file.
func (c *Client) GetFileContents(ctx context.Context, filePath string) (string, error) {
	data, err := c.do(ctx, http.MethodGet, vaultPath(filePath), nil, nil, nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetBatchFileContents reads several files and concatenates them, each
// under a "# path" header. A per-file failure is embedded as an inline
// error note and the batch continues; partial success is the designed
// behavior.
func (c *Client) GetBatchFileContents(ctx context.Context, filePaths []string) (string, error) {
	var b strings.Builder
	for _, filePath := range filePaths {
		content, err := c.GetFileContents(ctx, filePath)
		if err != nil {
			fmt.Fprintf(&b, "# %s\n\nError reading file: %s\n\n---\n\n", filePath, err)
			continue
		}
		fmt.Fprintf(&b, "# %s\n\n%s\n\n---\n\n", filePath, content)
	}
	return b.String(), nil
}

// AppendContent appends markdown content to a vault file, creating it if
// absent.
func (c *Client) AppendContent(ctx context.Context, filePath, content string) error {
	headers := map[string]string{"Content-Type": markdownContentType}
	_, err := c.do(ctx, http.MethodPost, vaultPath(filePath), nil, headers, strings.NewReader(content))
	return err
}

// PutContent replaces the full content of a vault file.
func (c *Client) PutContent(ctx context.Context, filePath, content string) error {
	headers := map[string]string{"Content-Type": markdownContentType}
	_, err := c.do(ctx, http.MethodPut, vaultPath(filePath), nil, headers, strings.NewReader(content))
	return err
}

// DeleteFile removes a file (or directory) from the vault.
func (c *Client) DeleteFile(ctx context.Context, filePath string) error {
	_, err := c.do(ctx, http.MethodDelete, vaultPath(filePath), nil, nil, nil)
	return err
}

// PatchContent performs a structured patch against a file using the
// service's Operation/Target-Type/Target header protocol.
func (c *Client) PatchContent(ctx context.Context, filePath, operation, targetType, target, content string) error {
	headers := map[string]string{
		"Content-Type": markdownContentType,
		"Operation":    operation,
		"Target-Type":  targetType,
		"Target":       url.QueryEscape(target),
	}
	_, err := c.do(ctx, http.MethodPatch, vaultPath(filePath), nil, headers, strings.NewReader(content))
	return err
}

// PatchOperation selects the line-patch behavior.
type PatchOperation string

const (
	// PatchInsert appends content at a target line via the service's
	// line-targeted patch.
	PatchInsert PatchOperation = "insert"
	// PatchDelete removes a line. The service has no native line delete,
	// so it is emulated client-side.
	PatchDelete PatchOperation = "delete"
)

// PatchContentAtLine inserts content at, or deletes, a 1-based line of a
// vault file.
//
// Deletion is emulated by fetching the whole file, removing the line, and
// overwriting the file. This is not atomic with respect to concurrent
// external edits; callers accept the read-modify-write race window.
func (c *Client) PatchContentAtLine(ctx context.Context, filePath string, lineNumber int, content string, operation PatchOperation) error {
	switch operation {
	case PatchInsert:
		return c.PatchContent(ctx, filePath, "append", "line", strconv.Itoa(lineNumber), content)
	case PatchDelete:
		current, err := c.GetFileContents(ctx, filePath)
		if err != nil {
			return err
		}
		lines := strings.Split(current, "\n")
		if lineNumber < 1 || lineNumber > len(lines) {
			return fmt.Errorf("line number %d is out of range (file has %d lines)", lineNumber, len(lines))
		}
		lines = append(lines[:lineNumber-1], lines[lineNumber:]...)
		return c.PutContent(ctx, filePath, strings.Join(lines, "\n"))
	default:
		return fmt.Errorf("unsupported operation: %s (use %q or %q)", operation, PatchInsert, PatchDelete)
	}
}

// CreateFolder materializes a folder by writing a placeholder note inside
// it and deleting the placeholder, leaving the directory behind.
//
// This is a workaround for the absence of a folder primitive in the
// remote API: there is a brief window where the placeholder file exists.
func (c *Client) CreateFolder(ctx context.Context, folderPath string) error {
	placeholder := strings.TrimSuffix(folderPath, "/") + "/" + placeholderNote
	if err := c.PutContent(ctx, placeholder, "# placeholder to create folder structure"); err != nil {
		return err
	}
	return c.DeleteFile(ctx, placeholder)
}

// DeleteFolder removes a folder and all of its contents. The service's
// delete endpoint accepts directories directly.
func (c *Client) DeleteFolder(ctx context.Context, folderPath string) error {
	return c.DeleteFile(ctx, folderPath)
}
