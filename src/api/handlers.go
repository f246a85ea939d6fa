package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/elee1766/taskchat/src/chat"
	"github.com/elee1766/taskchat/src/storage"
)

type chatRequest struct {
	Message        string `json:"message" validate:"required"`
	UserID         string `json:"user_id" validate:"required"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type chatResponse struct {
	Response       string    `json:"response"`
	ConversationID string    `json:"conversation_id"`
	Timestamp      time.Time `json:"timestamp"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("chat request received", "user_id", req.UserID, "conversation_id", req.ConversationID)

	out, err := s.chat.Chat(r.Context(), chat.ChatInput{
		UserID:         req.UserID,
		Message:        req.Message,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		s.logger.Error("chat request failed", "user_id", req.UserID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Error processing chat request")
		return
	}

	s.respondJSON(w, http.StatusOK, chatResponse{
		Response:       out.Reply,
		ConversationID: out.ConversationID,
		Timestamp:      out.Timestamp,
	})
}

type conversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	conversations, err := storage.ListConversationsByUserID(r.Context(), s.db.DB(), userID)
	if err != nil {
		s.logger.Error("failed to list conversations", "user_id", userID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Error retrieving conversations")
		return
	}

	out := make([]conversationSummary, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, conversationSummary{ID: c.ID, Title: c.Title, UpdatedAt: c.CreatedAt})
	}
	s.respondJSON(w, http.StatusOK, out)
}

type messagePayload struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleConversationMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversation_id")
	if conversationID == "" {
		s.respondError(w, http.StatusBadRequest, "conversation_id is required")
		return
	}

	messages, err := storage.GetMessagesByConversationID(r.Context(), s.db.DB(), conversationID)
	if err != nil {
		s.logger.Error("failed to load messages", "conversation_id", conversationID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Error retrieving messages")
		return
	}

	out := make([]messagePayload, 0, len(messages))
	for _, m := range messages {
		out = append(out, messagePayload{ID: m.ID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}
