package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Period identifies a periodic-note cadence.
type Period string

const (
	PeriodDaily     Period = "daily"
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// ParsePeriod validates a period string against the known cadences.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return Period(s), nil
	default:
		return "", fmt.Errorf("invalid period %q (expected daily, weekly, monthly, quarterly, or yearly)", s)
	}
}

// NoteVariant selects what GetPeriodicNote returns.
type NoteVariant string

const (
	// VariantContent returns just the note body as markdown.
	VariantContent NoteVariant = "content"
	// VariantMetadata returns note metadata (path, tags, ...) plus content
	// as JSON.
	VariantMetadata NoteVariant = "metadata"
)

// GetPeriodicNote fetches the current periodic note for a period.
func (c *Client) GetPeriodicNote(ctx context.Context, period Period, variant NoteVariant) (string, error) {
	var headers map[string]string
	if variant == VariantMetadata {
		headers = map[string]string{"Accept": "application/vnd.olrapi.note+json"}
	}

	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/periodic/%s/", period), nil, headers, nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetRecentPeriodicNotes returns the most recent periodic notes for a
// period type, optionally with their content.
func (c *Client) GetRecentPeriodicNotes(ctx context.Context, period Period, limit int, includeContent bool) (json.RawMessage, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("includeContent", strconv.FormatBool(includeContent))

	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/periodic/%s/recent", period), params, nil, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
