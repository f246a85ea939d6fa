package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elee1766/taskchat/src/storage"
)

// ChatInput is one user turn arriving from the API.
type ChatInput struct {
	UserID         string
	Message        string
	ConversationID string
}

// ChatOutput is the completed turn returned to the API.
type ChatOutput struct {
	Reply          string
	ConversationID string
	Timestamp      time.Time
}

// Service owns the per-request bookkeeping around the conversation loop:
// user and conversation rows, message persistence, history loading.
type Service struct {
	db         *storage.DB
	controller *Controller
	logger     *slog.Logger
}

// NewService wires the chat service.
func NewService(db *storage.DB, controller *Controller, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, controller: controller, logger: logger}
}

// Chat handles one user message end to end. A missing or stale conversation
// id transparently starts a new conversation rather than failing the request.
func (s *Service) Chat(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	if _, err := storage.EnsureUser(ctx, s.db.DB(), input.UserID); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	conversationID, err := s.resolveConversation(ctx, input.UserID, input.ConversationID)
	if err != nil {
		return nil, err
	}

	userMsg := &storage.Message{
		ConversationID: conversationID,
		Role:           storage.RoleUser,
		Content:        &input.Message,
	}
	if err := storage.CreateMessage(ctx, s.db.DB(), userMsg); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	stored, err := storage.GetMessagesByConversationID(ctx, s.db.DB(), conversationID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	history := SanitizeHistory(stored)

	reply, err := s.controller.Run(ctx, conversationID, input.UserID, input.Message, history)
	if err != nil {
		return nil, err
	}

	return &ChatOutput{
		Reply:          reply,
		ConversationID: conversationID,
		Timestamp:      time.Now().UTC(),
	}, nil
}

// resolveConversation returns a usable conversation id, creating a fresh
// conversation when none was given or the given one no longer exists.
func (s *Service) resolveConversation(ctx context.Context, userID, conversationID string) (string, error) {
	if conversationID != "" {
		conv, err := storage.GetConversationByID(ctx, s.db.DB(), conversationID)
		if err != nil {
			return "", fmt.Errorf("load conversation: %w", err)
		}
		if conv != nil {
			return conv.ID, nil
		}
		s.logger.Warn("conversation not found, starting a new one", "conversation_id", conversationID)
	}

	conv := &storage.Conversation{
		UserID: userID,
		Title:  "Conversation " + time.Now().UTC().Format("2006-01-02 15:04"),
	}
	if err := storage.CreateConversation(ctx, s.db.DB(), conv); err != nil {
		return "", fmt.Errorf("create conversation: %w", err)
	}
	s.logger.Info("conversation created", "conversation_id", conv.ID, "user_id", userID)
	return conv.ID, nil
}
