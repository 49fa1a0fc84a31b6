package docconv

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"
)

// RawTextConverter is the fallback converter: it reads the file as-is
// and returns its bytes when they form valid UTF-8. It rescues text
// formats the primary converter mishandled but refuses binary content
// rather than emitting garbage.
type RawTextConverter struct{}

// NewRawTextConverter builds the fallback converter.
func NewRawTextConverter() *RawTextConverter {
	return &RawTextConverter{}
}

// Convert returns the file's content verbatim.
func (c *RawTextConverter) Convert(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s is not valid text", path)
	}
	return string(data), nil
}
