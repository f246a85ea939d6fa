// Package chat runs the tool-calling conversation loop between stored
// conversations and the model provider.
package chat

import (
	"strings"

	"github.com/elee1766/taskchat/src/aisdk"
	"github.com/elee1766/taskchat/src/storage"
)

// maxHistoryMessages bounds how much stored history is replayed to the model
// each turn. Older messages are dropped first.
const maxHistoryMessages = 10

// SanitizeHistory converts stored messages into provider chat history.
// Roles are mapped to the provider's vocabulary, null content becomes the
// empty string, and only the most recent maxHistoryMessages entries survive.
func SanitizeHistory(messages []storage.Message) []aisdk.ChatMessage {
	if len(messages) > maxHistoryMessages {
		messages = messages[len(messages)-maxHistoryMessages:]
	}

	history := make([]aisdk.ChatMessage, 0, len(messages))
	for _, m := range messages {
		content := ""
		if m.Content != nil {
			content = *m.Content
		}
		history = append(history, aisdk.ChatMessage{
			Role:    providerRole(m.Role),
			Message: content,
		})
	}
	return history
}

func providerRole(role string) string {
	switch role {
	case storage.RoleUser:
		return aisdk.RoleUser
	case storage.RoleAssistant:
		return aisdk.RoleChatbot
	}
	return strings.ToUpper(role)
}
