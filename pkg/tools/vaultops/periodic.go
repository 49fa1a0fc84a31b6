package vaultops

import (
	"context"
	"fmt"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/vault"
)

// NewGetPeriodicNoteTool fetches the current periodic note for a
// cadence, as raw content or as metadata JSON.
func NewGetPeriodicNoteTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "get_periodic_note",
		Description: "Get the current periodic note for a period (daily, weekly, monthly, quarterly, yearly). The type selects the note content or its metadata.",
		Fields: []tools.Field{
			{Name: "period", Type: "string", Required: true},
			{Name: "type", Type: "string", Default: "content"},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, rawPeriod, rawVariant string) string {
			period, err := vault.ParsePeriod(rawPeriod)
			if err != nil {
				return failure(err)
			}

			var variant vault.NoteVariant
			switch rawVariant {
			case string(vault.VariantContent):
				variant = vault.VariantContent
			case string(vault.VariantMetadata):
				variant = vault.VariantMetadata
			default:
				return fmt.Sprintf("operation failed: invalid type %q (expected content or metadata)", rawVariant)
			}

			note, err := client.GetPeriodicNote(ctx, period, variant)
			if err != nil {
				return failure(err)
			}
			return note
		}},
	}
}

// NewGetRecentPeriodicNotesTool lists the most recent periodic notes
// for a cadence.
func NewGetRecentPeriodicNotesTool(client *vault.Client) tools.Spec {
	return tools.Spec{
		Name:        "get_recent_periodic_notes",
		Description: "List the most recent periodic notes for a period (daily, weekly, monthly, quarterly, yearly).",
		Fields: []tools.Field{
			{Name: "period", Type: "string", Required: true},
			{Name: "limit", Type: "integer", Default: "5"},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, rawPeriod, limit string) string {
			period, err := vault.ParsePeriod(rawPeriod)
			if err != nil {
				return failure(err)
			}
			limitN, err := parsePositiveInt("limit", limit)
			if err != nil {
				return failure(err)
			}

			notes, err := client.GetRecentPeriodicNotes(ctx, period, limitN, false)
			if err != nil {
				return failure(err)
			}
			return string(notes)
		}},
	}
}
