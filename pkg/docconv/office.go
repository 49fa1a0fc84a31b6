package docconv

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Word and PowerPoint documents are zip archives of XML parts. Text
// lives in `t` elements (the w: namespace for Word runs, a: for
// DrawingML shapes); paragraph boundaries are `p` elements. The
// extractors below walk the token stream directly rather than modeling
// the full OOXML schema.

// convertWordDocument extracts paragraph text from a .docx file.
func convertWordDocument(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer archive.Close()

	part := findArchivePart(archive, "word/document.xml")
	if part == nil {
		return "", fmt.Errorf("document %s has no word/document.xml part", path)
	}

	text, err := extractPartText(part)
	if err != nil {
		return "", fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return text, nil
}

// convertPresentation extracts slide text from a .pptx file, one
// heading per slide in slide order.
func convertPresentation(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open presentation %s: %w", path, err)
	}
	defer archive.Close()

	var slides []*zip.File
	for _, file := range archive.File {
		if strings.HasPrefix(file.Name, "ppt/slides/slide") && strings.HasSuffix(file.Name, ".xml") {
			slides = append(slides, file)
		}
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("presentation %s has no slides", path)
	}
	sort.Slice(slides, func(i, j int) bool { return slideLess(slides[i].Name, slides[j].Name) })

	var builder strings.Builder
	for i, slide := range slides {
		text, err := extractPartText(slide)
		if err != nil {
			return "", fmt.Errorf("failed to read slide %s: %w", slide.Name, err)
		}
		fmt.Fprintf(&builder, "## Slide %d\n\n", i+1)
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// slideLess orders slide part names numerically so slide10 sorts after
// slide9 rather than after slide1.
func slideLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func findArchivePart(archive *zip.ReadCloser, name string) *zip.File {
	for _, file := range archive.File {
		if file.Name == name {
			return file
		}
	}
	return nil
}

// extractPartText pulls character data out of `t` elements, inserting a
// newline at each paragraph end.
func extractPartText(part *zip.File) (string, error) {
	reader, err := part.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	decoder := xml.NewDecoder(reader)
	var builder strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(tok)
			}
		}
	}

	return strings.TrimRight(builder.String(), "\n") + "\n", nil
}
