// Package server exposes the agent over HTTP: a chat endpoint backed by
// the reasoning loop, conversation history retrieval, and direct
// document conversion. The reasoning loop itself is a collaborator
// behind the Runner interface; this package only wires requests to it
// and records transcripts.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alcovehq/alcove/pkg/docconv"
	"github.com/alcovehq/alcove/pkg/logging"
	"github.com/alcovehq/alcove/pkg/security/pathguard"
	"github.com/alcovehq/alcove/pkg/session"
)

// Runner executes one conversational turn: given the user's message it
// returns the agent's reply, invoking whatever tools it needs along the
// way.
type Runner interface {
	Run(ctx context.Context, message string) (string, error)
}

// Server routes HTTP requests to the runner, session store, and
// conversion pipeline.
type Server struct {
	runner   Runner
	sessions *session.Store
	pipeline *docconv.Pipeline
	guard    *pathguard.Guard
	logger   *logging.Logger
}

// New builds a server over its collaborators.
func New(runner Runner, sessions *session.Store, pipeline *docconv.Pipeline, guard *pathguard.Guard, logger *logging.Logger) *Server {
	return &Server{
		runner:   runner,
		sessions: sessions,
		pipeline: pipeline,
		guard:    guard,
		logger:   logger,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /conversations", s.handleListConversations)
	mux.HandleFunc("GET /conversations/{id}", s.handleGetConversation)
	mux.HandleFunc("DELETE /conversations/{id}", s.handleDeleteConversation)
	mux.HandleFunc("POST /convert-file", s.handleConvertFile)
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "alcove",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

type chatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id"`
	Status         string `json:"status"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	id := s.sessions.GetOrCreate(req.ConversationID)

	reply, err := s.runner.Run(r.Context(), req.Message)
	if err != nil {
		s.logger.Errorf("chat turn failed for %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("agent error: %v", err))
		return
	}

	s.sessions.Append(id, req.Message, reply)
	s.logger.Infof("chat turn completed for %s", id)
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, ConversationID: id, Status: "success"})
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"conversations": s.sessions.List()})
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	turns, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown conversation %q", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"conversation_id": id,
		"turns":           turns,
	})
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown conversation %q", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type convertRequest struct {
	SourcePath   string `json:"source_path"`
	OutputFormat string `json:"output_format"`
	OutputPath   string `json:"output_path,omitempty"`
}

type convertResponse struct {
	Content    string `json:"content"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleConvertFile(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	format := docconv.Format(req.OutputFormat)
	if format == "" {
		format = docconv.FormatMarkdown
	}
	if format != docconv.FormatMarkdown && format != docconv.FormatText {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid output_format %q (expected markdown or text)", req.OutputFormat))
		return
	}

	source, err := s.guard.Resolve(req.SourcePath)
	if err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	outputPath := req.OutputPath
	if outputPath != "" {
		if outputPath, err = s.guard.Resolve(outputPath); err != nil {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
	}

	result, err := s.pipeline.Convert(r.Context(), docconv.Request{
		SourcePath: source,
		Format:     format,
		OutputPath: outputPath,
	})
	if err != nil {
		kind := docconv.Classify(err)
		s.logger.Warnf("conversion of %s failed: %s: %v", source, kind, err)
		writeJSON(w, conversionStatus(kind), map[string]string{
			"error":   string(kind),
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{Content: result.Content, OutputPath: result.OutputPath})
}

// conversionStatus maps a conversion failure kind to an HTTP status.
func conversionStatus(kind docconv.FailureKind) int {
	switch kind {
	case docconv.FailureNotFound:
		return http.StatusNotFound
	case docconv.FailureUnsupportedType:
		return http.StatusUnsupportedMediaType
	case docconv.FailureTimeout:
		return http.StatusGatewayTimeout
	case docconv.FailureMissingDependency:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already written; an encode failure here has no
	// recovery path.
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
