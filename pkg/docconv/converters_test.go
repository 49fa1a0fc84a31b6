package docconv

import (
	"archive/zip"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentConverterPlainText(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "plain content\n")

	got, err := NewDocumentConverter().Convert(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "plain content\n", got)
}

func TestDocumentConverterLegacyFormats(t *testing.T) {
	for _, name := range []string{"old.doc", "old.xls", "old.ppt"} {
		path := writeTempFile(t, name, "binary")

		_, err := NewDocumentConverter().Convert(context.Background(), path)

		var missing *MissingDependencyError
		require.ErrorAs(t, err, &missing, "extension %s", filepath.Ext(name))
		assert.NotEmpty(t, missing.Component)
	}
}

func TestRawTextConverterRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))

	_, err := NewRawTextConverter().Convert(context.Background(), path)
	assert.Error(t, err)
}

func TestRawTextConverterReadsText(t *testing.T) {
	path := writeTempFile(t, "notes.md", "# heading\n")

	got, err := NewRawTextConverter().Convert(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# heading\n", got)
}

func TestConvertHTML(t *testing.T) {
	path := writeTempFile(t, "page.html", `<html>
<head><title>ignored</title><script>var x = 1;</script></head>
<body>
<h1>Title</h1>
<p>Hello <strong>world</strong> and <em>more</em>.</p>
<ul><li>first</li><li>second</li></ul>
<p>See <a href="https://example.com">the site</a>.</p>
</body>
</html>`)

	got, err := convertHTML(path)
	require.NoError(t, err)

	assert.Contains(t, got, "# Title")
	assert.Contains(t, got, "**world**")
	assert.Contains(t, got, "*more*")
	assert.Contains(t, got, "- first")
	assert.Contains(t, got, "- second")
	assert.Contains(t, got, "[the site](https://example.com)")
	assert.NotContains(t, got, "var x")
	assert.NotContains(t, got, "ignored")
}

func TestConvertWordDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	writeZip(t, path, map[string]string{
		"word/document.xml": `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`,
	})

	got, err := convertWordDocument(path)
	require.NoError(t, err)
	assert.Contains(t, got, "First paragraph\n")
	assert.Contains(t, got, "Second paragraph\n")
}

func TestConvertPresentation(t *testing.T) {
	slide := func(text string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody>
    <a:p><a:r><a:t>` + text + `</a:t></a:r></a:p>
  </p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
	}

	path := filepath.Join(t.TempDir(), "deck.pptx")
	writeZip(t, path, map[string]string{
		"ppt/slides/slide1.xml": slide("Opening"),
		"ppt/slides/slide2.xml": slide("Closing"),
	})

	got, err := convertPresentation(path)
	require.NoError(t, err)

	assert.Contains(t, got, "## Slide 1")
	assert.Contains(t, got, "Opening")
	assert.Contains(t, got, "## Slide 2")
	assert.Contains(t, got, "Closing")
	assert.Less(t, strings.Index(got, "Opening"), strings.Index(got, "Closing"))
}

func TestConvertWordDocumentMissingPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	writeZip(t, path, map[string]string{"other.xml": "<x/>"})

	_, err := convertWordDocument(path)
	assert.Error(t, err)
}

func writeZip(t *testing.T, path string, parts map[string]string) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := zip.NewWriter(file)
	for name, content := range parts {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
}

func TestConvertPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixel.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, image.NewRGBA(image.Rect(0, 0, 2, 3))))
	require.NoError(t, file.Close())

	got, err := convertPNG(path)
	require.NoError(t, err)

	assert.Contains(t, got, "# pixel.png")
	assert.Contains(t, got, "- Format: png")
	assert.Contains(t, got, "- Dimensions: 2x3")
}

func TestConvertJPEGWithoutExif(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(file, image.NewRGBA(image.Rect(0, 0, 4, 2)), nil))
	require.NoError(t, file.Close())

	got, err := convertJPEG(path)
	require.NoError(t, err)

	assert.Contains(t, got, "- Format: jpeg")
	assert.Contains(t, got, "- Dimensions: 4x2")
}
