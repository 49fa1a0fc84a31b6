package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcovehq/alcove/pkg/docconv"
	"github.com/alcovehq/alcove/pkg/logging"
	"github.com/alcovehq/alcove/pkg/security/pathguard"
	"github.com/alcovehq/alcove/pkg/session"
)

// echoRunner replies with a fixed transformation of the message.
type echoRunner struct {
	err error
}

func (r *echoRunner) Run(_ context.Context, message string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "echo: " + message, nil
}

// TestMain pins the log directory for the whole package run; the
// logging package resolves it once per process.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "alcove-server-logs")
	if err != nil {
		panic(err)
	}
	os.Setenv("ALCOVE_LOG_DIR", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestServer(t *testing.T, runner Runner) (*Server, string) {
	t.Helper()

	baseDir := t.TempDir()
	guard, err := pathguard.New(baseDir, nil, nil)
	require.NoError(t, err)

	logger, err := logging.NewLogger("server-test")
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	pipeline := docconv.NewPipeline(docconv.NewDocumentConverter(), docconv.NewRawTextConverter(), 5*time.Second)
	return New(runner, session.NewStore(), pipeline, guard, logger), baseDir
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &echoRunner{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alcove"`)
}

func TestChatCreatesConversation(t *testing.T) {
	srv, _ := newTestServer(t, &echoRunner{})
	handler := srv.Handler()

	rec := postJSON(t, handler, "/chat", map[string]string{"message": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "echo: hello", resp.Reply)
	assert.True(t, strings.HasPrefix(resp.ConversationID, "conv_"), "id %q", resp.ConversationID)

	// The turn is retrievable.
	req := httptest.NewRequest(http.MethodGet, "/conversations/"+resp.ConversationID, nil)
	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, req)

	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Contains(t, getRec.Body.String(), "echo: hello")
}

func TestChatContinuesConversation(t *testing.T) {
	srv, _ := newTestServer(t, &echoRunner{})
	handler := srv.Handler()

	postJSON(t, handler, "/chat", map[string]string{"message": "one", "conversation_id": "chat-1"})
	postJSON(t, handler, "/chat", map[string]string{"message": "two", "conversation_id": "chat-1"})

	req := httptest.NewRequest(http.MethodGet, "/conversations/chat-1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp struct {
		Turns []session.Turn `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Turns, 2)
	assert.Equal(t, "one", resp.Turns[0].UserText)
	assert.Equal(t, "two", resp.Turns[1].UserText)
}

func TestChatValidation(t *testing.T) {
	srv, _ := newTestServer(t, &echoRunner{})
	handler := srv.Handler()

	rec := postJSON(t, handler, "/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{broken"))
	raw := httptest.NewRecorder()
	handler.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestChatRunnerFailure(t *testing.T) {
	srv, _ := newTestServer(t, &echoRunner{err: errors.New("model unavailable")})

	rec := postJSON(t, srv.Handler(), "/chat", map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "model unavailable")
}

func TestConversationNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &echoRunner{})
	handler := srv.Handler()

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		req := httptest.NewRequest(method, "/conversations/ghost", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
	}
}

func TestDeleteConversation(t *testing.T) {
	srv, _ := newTestServer(t, &echoRunner{})
	handler := srv.Handler()

	postJSON(t, handler, "/chat", map[string]string{"message": "hi", "conversation_id": "doomed"})

	req := httptest.NewRequest(http.MethodDelete, "/conversations/doomed", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/conversations/doomed", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConvertFile(t *testing.T) {
	srv, baseDir := newTestServer(t, &echoRunner{})
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "doc.md"), []byte("# Title\n\n**bold**\n"), 0o644))

	rec := postJSON(t, srv.Handler(), "/convert-file", convertRequest{
		SourcePath:   "doc.md",
		OutputFormat: "text",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp convertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Title\n\nbold\n", resp.Content)
	assert.Empty(t, resp.OutputPath)
}

func TestConvertFilePersists(t *testing.T) {
	srv, baseDir := newTestServer(t, &echoRunner{})
	content := strings.Repeat("y", 1200)
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "big.txt"), []byte(content), 0o644))

	rec := postJSON(t, srv.Handler(), "/convert-file", convertRequest{
		SourcePath:   "big.txt",
		OutputFormat: "markdown",
		OutputPath:   "out/big.md",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp convertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, strings.Repeat("y", 1000)+"...", resp.Content)
	assert.Equal(t, filepath.Join(baseDir, "out", "big.md"), resp.OutputPath)

	saved, err := os.ReadFile(resp.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(saved))
}

func TestConvertFileFailureStatuses(t *testing.T) {
	srv, baseDir := newTestServer(t, &echoRunner{})
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "archive.zip"), []byte("PK"), 0o644))

	tests := []struct {
		name       string
		req        convertRequest
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing file",
			req:        convertRequest{SourcePath: "ghost.md"},
			wantStatus: http.StatusNotFound,
			wantError:  "NotFound",
		},
		{
			name:       "unsupported type",
			req:        convertRequest{SourcePath: "archive.zip"},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  "UnsupportedType",
		},
		{
			name:       "invalid format",
			req:        convertRequest{SourcePath: "doc.md", OutputFormat: "pdf"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, srv.Handler(), "/convert-file", tt.req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Contains(t, rec.Body.String(), fmt.Sprintf("%q", tt.wantError))
			}
		})
	}
}

func TestConvertFileGuardRejection(t *testing.T) {
	srv, _ := newTestServer(t, &echoRunner{})

	rec := postJSON(t, srv.Handler(), "/convert-file", convertRequest{SourcePath: "/etc/passwd"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
