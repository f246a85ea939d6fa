// Package api exposes the chat and task-history HTTP endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/elee1766/taskchat/src/chat"
	"github.com/elee1766/taskchat/src/storage"
)

// Server serves the JSON API.
type Server struct {
	db       *storage.DB
	chat     *chat.Service
	logger   *slog.Logger
	validate *validator.Validate
	mux      *http.ServeMux
	origins  []string
}

// NewServer builds the API server and registers all routes.
func NewServer(db *storage.DB, chatService *chat.Service, origins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		db:       db,
		chat:     chatService,
		logger:   logger,
		validate: validator.New(),
		mux:      http.NewServeMux(),
		origins:  origins,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/chat", s.handleChat)
	s.mux.HandleFunc("GET /api/conversations/{user_id}", s.handleListConversations)
	s.mux.HandleFunc("GET /api/conversations/{conversation_id}/messages", s.handleConversationMessages)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(s.mux)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
