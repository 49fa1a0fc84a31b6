package docconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bold and inline code",
			input: "**bold** and `code`",
			want:  "bold and code",
		},
		{
			name:  "heading markers",
			input: "# Title\n## Subtitle\nbody",
			want:  "Title\nSubtitle\nbody",
		},
		{
			name:  "italics",
			input: "*emphasis*",
			want:  "emphasis",
		},
		{
			name:  "bold unwraps before italics",
			input: "**x** *y*",
			want:  "x y",
		},
		{
			name:  "plain text untouched",
			input: "nothing to strip",
			want:  "nothing to strip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkdown(tt.input))
		})
	}
}

func TestStripMarkdownFixedPoint(t *testing.T) {
	once := StripMarkdown("# Title\n\n**bold** and *italic* and `code`")
	assert.Equal(t, once, StripMarkdown(once))
}
