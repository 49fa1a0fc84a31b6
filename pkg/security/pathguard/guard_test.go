package pathguard

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRelative(t *testing.T) {
	base := t.TempDir()
	g, err := New(base, nil, nil)
	require.NoError(t, err)

	got, err := g.Resolve("docs/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "docs", "report.pdf"), got)
}

func TestResolveRejectsSystemDirectories(t *testing.T) {
	g, err := New(t.TempDir(), nil, nil)
	require.NoError(t, err)

	for _, path := range []string{"/etc/passwd", "/usr/bin/env", "/etc"} {
		_, err := g.Resolve(path)
		assert.Error(t, err, "expected %q to be rejected", path)
	}
}

func TestResolveDeniedPatterns(t *testing.T) {
	g, err := New(t.TempDir(), nil, []string{"**/*.key", "**/secrets/**"})
	require.NoError(t, err)

	_, err = g.Resolve("/home/user/server.key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied pattern")

	_, err = g.Resolve("/home/user/notes.md")
	assert.NoError(t, err)
}

func TestResolveDeniedTakesPrecedence(t *testing.T) {
	g, err := New(t.TempDir(), []string{"/data/**"}, []string{"**/*.key"})
	require.NoError(t, err)

	_, err = g.Resolve("/data/server.key")
	assert.Error(t, err)
}

func TestResolveAllowedPatterns(t *testing.T) {
	g, err := New(t.TempDir(), []string{"/data/**"}, nil)
	require.NoError(t, err)

	_, err = g.Resolve("/data/in/report.docx")
	assert.NoError(t, err)

	_, err = g.Resolve("/home/user/report.docx")
	assert.Error(t, err, "path outside allowed patterns should be rejected")
}

func TestInvalidPatterns(t *testing.T) {
	_, err := New(t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)

	_, err = New(t.TempDir(), nil, []string{"[unclosed"})
	assert.Error(t, err)

	_, err = New("", nil, nil)
	assert.Error(t, err)
}
