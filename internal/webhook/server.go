// internal/webhook/server.go

// Package webhook exposes the HTTP surface: chat (buffered and
// streaming), named task triggers, and a small read-only sessions API.
package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/dhirajp15/dhirux-workflows/internal/agentic"
	"github.com/dhirajp15/dhirux-workflows/internal/state"
	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

// TaskHandler is a callback that processes a prompt within the given session.
type TaskHandler func(key types.SessionKey, prompt string) (string, error)

// Server is a lightweight HTTP handler for the chat and webhook endpoints.
type Server struct {
	service     *agentic.Service
	tasks       *state.TaskStore
	handler     TaskHandler
	sessions    types.SessionStore
	transcripts types.TranscriptStore
	mux         *http.ServeMux
}

// NewServer creates a Server wired to the orchestrator and stores.
func NewServer(service *agentic.Service, tasks *state.TaskStore, handler TaskHandler, sessions types.SessionStore, transcripts types.TranscriptStore) *Server {
	s := &Server{
		service:     service,
		tasks:       tasks,
		handler:     handler,
		sessions:    sessions,
		transcripts: transcripts,
		mux:         http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /chat", s.handleChat)
	s.mux.HandleFunc("POST /chat/stream", s.handleChatStream)
	s.mux.HandleFunc("POST /webhook", s.handleAdHoc)
	s.mux.HandleFunc("POST /webhook/", s.handleNamedTask)
	s.mux.HandleFunc("GET /api/sessions", s.handleAPISessions)
	s.mux.HandleFunc("GET /api/sessions/", s.handleAPISessionTranscript)
	return s
}

// ServeHTTP delegates to the internal mux, implementing http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"enabled": s.service.Enabled(),
		"ready":   s.service.Ready(),
	})
}

// chatRequest is the JSON body for POST /chat and POST /chat/stream.
// Either a single message string or an OpenAI-style messages array may
// be supplied; with an array, the last user message is the input.
type chatRequest struct {
	Message   string          `json:"message"`
	Messages  []types.Message `json:"messages"`
	SessionID string          `json:"session_id"`
}

func (r *chatRequest) text() string {
	if r.Message != "" {
		return r.Message
	}
	return types.LastUserText(r.Messages)
}

func (s *Server) decodeChat(w http.ResponseWriter, r *http.Request) (string, types.SessionID, bool) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return "", "", false
	}
	text := req.text()
	if text == "" {
		http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
		return "", "", false
	}
	return text, types.SessionID(req.SessionID).OrDefault(), true
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	text, session, ok := s.decodeChat(w, r)
	if !ok {
		return
	}

	resp, err := s.service.Chat(r.Context(), text, session)
	if err != nil {
		s.writeChatError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"response":   resp,
		"session_id": string(session),
	})
}

func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	text, session, ok := s.decodeChat(w, r)
	if !ok {
		return
	}

	stream, err := s.service.StreamChat(r.Context(), text, session)
	if err != nil {
		s.writeChatError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Accel-Buffering", "no")
	flusher, _ := w.(http.Flusher)

	for fragment := range stream {
		if _, err := w.Write([]byte(fragment)); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *Server) writeChatError(w http.ResponseWriter, err error) {
	if agentic.IsConfigError(err) {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusServiceUnavailable)
		return
	}
	slog.Error("chat handler failed", "error", err)
	http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
}

// adHocRequest is the JSON body for POST /webhook.
type adHocRequest struct {
	Prompt     string `json:"prompt"`
	SessionKey string `json:"session_key"`
}

func (s *Server) handleAdHoc(w http.ResponseWriter, r *http.Request) {
	var req adHocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	if req.Prompt == "" || req.SessionKey == "" {
		http.Error(w, `{"error":"prompt and session_key are required"}`, http.StatusBadRequest)
		return
	}

	resp, err := s.handler(types.SessionKey(req.SessionKey), req.Prompt)
	if err != nil {
		slog.Error("webhook ad-hoc handler failed", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"response": resp})
}

// namedTaskRequest is the optional JSON body for POST /webhook/{name}.
type namedTaskRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleNamedTask(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/webhook/")
	if name == "" {
		http.Error(w, `{"error":"task name required"}`, http.StatusBadRequest)
		return
	}

	task, err := s.tasks.Get(name)
	if err != nil {
		http.Error(w, `{"error":"task not found"}`, http.StatusNotFound)
		return
	}

	if !task.Enabled {
		http.Error(w, `{"error":"task is disabled"}`, http.StatusForbidden)
		return
	}

	prompt := task.Prompt

	// Allow body to override the prompt
	var body namedTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Prompt != "" {
		prompt = body.Prompt
	}

	resp, err := s.handler(types.SessionKey(task.SessionKey), prompt)
	if err != nil {
		slog.Error("webhook named task handler failed", "task", name, "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"response": resp})
}

type sessionResponse struct {
	SessionID  string `json:"session_id"`
	SessionKey string `json:"session_key"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	TurnCount  int64  `json:"turn_count"`
}

func (s *Server) handleAPISessions(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil || s.transcripts == nil {
		http.Error(w, `{"error":"sessions API not configured"}`, http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		slog.Error("list sessions failed", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	result := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		count, err := s.transcripts.Count(ctx, sess.SessionID)
		if err != nil {
			slog.Warn("count turns failed", "session_id", sess.SessionID, "error", err)
		}
		result = append(result, sessionResponse{
			SessionID:  string(sess.SessionID),
			SessionKey: string(sess.SessionKey),
			CreatedAt:  sess.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			UpdatedAt:  sess.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
			TurnCount:  count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt > result[j].UpdatedAt
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleAPISessionTranscript(w http.ResponseWriter, r *http.Request) {
	if s.transcripts == nil {
		http.Error(w, `{"error":"sessions API not configured"}`, http.StatusServiceUnavailable)
		return
	}

	// Path: /api/sessions/{id}/transcript
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 || parts[1] != "transcript" {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	sessionID := types.SessionID(parts[0])

	limit := 200
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	turns, err := s.transcripts.Tail(r.Context(), sessionID, limit)
	if err != nil {
		slog.Error("tail transcript failed", "session_id", sessionID, "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	if turns == nil {
		turns = []*types.Turn{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(turns)
}
