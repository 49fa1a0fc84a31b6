package docconv

import "regexp"

// The plain-text substitutions, applied in this exact order. Later
// patterns assume earlier ones already removed enclosing markers: bold
// must be unwrapped before italics, or "**x**" would be half-consumed by
// the single-asterisk pattern.
var plainTextPasses = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`(?m)^#+ `), ""},          // heading markers
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},   // bold
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},       // italics
	{regexp.MustCompile("`(.*?)`"), "$1"},         // inline code
}

// StripMarkdown lossily converts markdown to plain text by removing
// heading markers and unwrapping bold, italic, and inline-code spans.
// The result is a fixed point: re-applying the sequence is a no-op.
func StripMarkdown(markdown string) string {
	out := markdown
	for _, pass := range plainTextPasses {
		out = pass.pattern.ReplaceAllString(out, pass.replace)
	}
	return out
}
