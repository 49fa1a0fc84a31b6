package docconv

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// skippedHTMLElements are noise elements whose subtrees carry no
// document content.
var skippedHTMLElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"iframe":   {},
	"svg":      {},
	"head":     {},
	"nav":      {},
	"footer":   {},
}

// headingDepths maps HTML heading tags to markdown marker counts.
var headingDepths = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// convertHTML parses an HTML file and renders its content as markdown:
// headings become `#` runs, emphasis becomes asterisk spans, list items
// become dashes, links become `[text](href)`.
func convertHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML %s: %w", path, err)
	}

	var builder strings.Builder
	renderNode(doc, &builder)

	out := collapseBlankLines(builder.String())
	return strings.TrimSpace(out) + "\n", nil
}

// renderNode walks the parse tree, emitting markdown for element nodes
// and trimmed text for text nodes.
func renderNode(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}

	if n.Type == html.TextNode {
		text := strings.Join(strings.Fields(n.Data), " ")
		if text != "" {
			builder.WriteString(text)
			builder.WriteString(" ")
		}
		return
	}

	if n.Type == html.ElementNode {
		tag := strings.ToLower(n.Data)
		if _, skip := skippedHTMLElements[tag]; skip {
			return
		}

		switch {
		case headingDepths[tag] > 0:
			builder.WriteString("\n\n")
			builder.WriteString(strings.Repeat("#", headingDepths[tag]))
			builder.WriteString(" ")
			renderChildren(n, builder)
			builder.WriteString("\n\n")
			return
		case tag == "p" || tag == "div" || tag == "section" || tag == "article" || tag == "tr":
			builder.WriteString("\n\n")
			renderChildren(n, builder)
			builder.WriteString("\n\n")
			return
		case tag == "li":
			builder.WriteString("\n- ")
			renderChildren(n, builder)
			return
		case tag == "br":
			builder.WriteString("\n")
			return
		case tag == "strong" || tag == "b":
			builder.WriteString("**")
			renderChildren(n, builder)
			trimTrailingSpace(builder)
			builder.WriteString("** ")
			return
		case tag == "em" || tag == "i":
			builder.WriteString("*")
			renderChildren(n, builder)
			trimTrailingSpace(builder)
			builder.WriteString("* ")
			return
		case tag == "code" || tag == "pre":
			builder.WriteString("`")
			renderChildren(n, builder)
			trimTrailingSpace(builder)
			builder.WriteString("` ")
			return
		case tag == "a":
			href := attrValue(n, "href")
			if href != "" {
				builder.WriteString("[")
				renderChildren(n, builder)
				trimTrailingSpace(builder)
				fmt.Fprintf(builder, "](%s) ", href)
				return
			}
		}
	}

	renderChildren(n, builder)
}

func renderChildren(n *html.Node, builder *strings.Builder) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		renderNode(child, builder)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// trimTrailingSpace drops a single trailing space left by text-node
// rendering so span markers close flush against their content.
func trimTrailingSpace(builder *strings.Builder) {
	s := builder.String()
	if strings.HasSuffix(s, " ") {
		builder.Reset()
		builder.WriteString(s[:len(s)-1])
	}
}

// collapseBlankLines squeezes runs of blank lines down to one and trims
// trailing spaces block rendering leaves behind.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
