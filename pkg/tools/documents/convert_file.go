// Package documents declares the document-conversion tool backed by the
// docconv pipeline.
package documents

import (
	"context"
	"fmt"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/docconv"
	"github.com/alcovehq/alcove/pkg/security/pathguard"
)

// NewConvertDocumentTool converts a local document to markdown or plain
// text. Source paths are resolved through the guard before anything is
// read.
func NewConvertDocumentTool(pipeline *docconv.Pipeline, guard *pathguard.Guard) tools.Spec {
	return tools.Spec{
		Name:        "convert_document",
		Description: "Convert a local document (PDF, Office, HTML, image, or text file) to markdown or plain text. The format is markdown or text.",
		Fields: []tools.Field{
			{Name: "source", Type: "string", Required: true},
			{Name: "format", Type: "string", Default: "markdown"},
		},
		Handler: tools.Handler{Binary: func(ctx context.Context, source, rawFormat string) string {
			var format docconv.Format
			switch rawFormat {
			case string(docconv.FormatMarkdown):
				format = docconv.FormatMarkdown
			case string(docconv.FormatText):
				format = docconv.FormatText
			default:
				return fmt.Sprintf("operation failed: invalid format %q (expected markdown or text)", rawFormat)
			}

			resolved, err := guard.Resolve(source)
			if err != nil {
				return fmt.Sprintf("operation failed: %v", err)
			}

			result, err := pipeline.Convert(ctx, docconv.Request{
				SourcePath: resolved,
				Format:     format,
			})
			if err != nil {
				return fmt.Sprintf("operation failed: %s: %v", docconv.Classify(err), err)
			}
			return result.Content
		}},
	}
}
