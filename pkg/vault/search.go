package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	jsonLogicContentType = "application/vnd.olrapi.jsonlogic+json"
	dqlContentType       = "application/vnd.olrapi.dataview.dql+txt"
)

// DefaultSearchContextLength is the number of surrounding characters
// returned with each simple-search match.
const DefaultSearchContextLength = 100

// SearchSimple runs a plain-text search across the vault and returns the
// service's match list as parsed-but-uninterpreted JSON.
func (c *Client) SearchSimple(ctx context.Context, query string, contextLength int) (json.RawMessage, error) {
	if contextLength <= 0 {
		contextLength = DefaultSearchContextLength
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("contextLength", strconv.Itoa(contextLength))

	data, err := c.do(ctx, http.MethodPost, "/search/simple/", params, nil, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// SearchJSON submits a JSON-logic query body to the search endpoint.
func (c *Client) SearchJSON(ctx context.Context, query json.RawMessage) (json.RawMessage, error) {
	headers := map[string]string{"Content-Type": jsonLogicContentType}
	data, err := c.do(ctx, http.MethodPost, "/search/", nil, headers, bytes.NewReader(query))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// GetRecentChanges queries recently modified files: sorted by modification
// time descending, filtered to a day window, capped by limit. The query is
// built declaratively and submitted verbatim; results are passed back
// without interpretation.
func (c *Client) GetRecentChanges(ctx context.Context, limit, days int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = 10
	}
	if days <= 0 {
		days = 90
	}

	query := strings.Join([]string{
		"TABLE file.mtime",
		fmt.Sprintf("WHERE file.mtime >= date(today) - dur(%d days)", days),
		"SORT file.mtime DESC",
		fmt.Sprintf("LIMIT %d", limit),
	}, "\n")

	headers := map[string]string{"Content-Type": dqlContentType}
	data, err := c.do(ctx, http.MethodPost, "/search/", nil, headers, strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
