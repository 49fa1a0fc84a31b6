package vaultops

import (
	"context"
	"encoding/json"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/vault"
)

// NewSearchFilesTool runs a plain-text search across the vault.
func NewSearchFilesTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "search_files",
		Description: "Search the vault for files containing the query text. Returns matches with surrounding context as JSON.",
		Fields: []tools.Field{
			{Name: "query", Type: "string", Required: true},
			{Name: "context_length", Type: "integer", Default: "100"},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, query, contextLength string) string {
			if query == "" {
				return "operation failed: query cannot be empty"
			}
			length, err := parsePositiveInt("context_length", contextLength)
			if err != nil {
				return failure(err)
			}

			results, err := client.SearchSimple(ctx, query, length)
			if err != nil {
				return failure(err)
			}
			return string(results)
		}},
	}
}

// NewSearchJSONTool submits a raw JSON-logic query to the search
// endpoint for callers that need structured conditions rather than
// plain text.
func NewSearchJSONTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "search_json",
		Description: "Search the vault with a JSON-logic query body for structured conditions such as tag or frontmatter matches.",
		Fields: []tools.Field{
			{Name: "query", Type: "json", Required: true},
		},
		Handler: tools.Handler{Unary: func(ctx context.Context, rawQuery string) string {
			if !json.Valid([]byte(rawQuery)) {
				return "operation failed: query must be valid JSON"
			}

			results, err := client.SearchJSON(ctx, json.RawMessage(rawQuery))
			if err != nil {
				return failure(err)
			}
			return string(results)
		}},
	}
}

// NewGetRecentChangesTool lists recently modified vault files.
func NewGetRecentChangesTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "get_recent_changes",
		Description: "List recently modified vault files, newest first, within a day window.",
		Fields: []tools.Field{
			{Name: "limit", Type: "integer", Default: "10"},
			{Name: "days", Type: "integer", Default: "90"},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, limit, days string) string {
			limitN, err := parsePositiveInt("limit", limit)
			if err != nil {
				return failure(err)
			}
			daysN, err := parsePositiveInt("days", days)
			if err != nil {
				return failure(err)
			}

			results, err := client.GetRecentChanges(ctx, limitN, daysN)
			if err != nil {
				return failure(err)
			}
			return string(results)
		}},
	}
}
