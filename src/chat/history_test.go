package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elee1766/taskchat/src/aisdk"
	"github.com/elee1766/taskchat/src/storage"
)

func strPtr(s string) *string { return &s }

func TestSanitizeHistoryRoles(t *testing.T) {
	messages := []storage.Message{
		{Role: "user", Content: strPtr("hello")},
		{Role: "assistant", Content: strPtr("hi there")},
		{Role: "system", Content: strPtr("note")},
	}

	history := SanitizeHistory(messages)
	assert.Equal(t, []aisdk.ChatMessage{
		{Role: "USER", Message: "hello"},
		{Role: "CHATBOT", Message: "hi there"},
		{Role: "SYSTEM", Message: "note"},
	}, history)
}

func TestSanitizeHistoryNullContent(t *testing.T) {
	messages := []storage.Message{
		{Role: "assistant", Content: nil},
	}

	history := SanitizeHistory(messages)
	assert.Equal(t, []aisdk.ChatMessage{
		{Role: "CHATBOT", Message: ""},
	}, history)
}

func TestSanitizeHistoryTruncation(t *testing.T) {
	var messages []storage.Message
	for i := 0; i < 25; i++ {
		messages = append(messages, storage.Message{
			Role:    "user",
			Content: strPtr(fmt.Sprintf("message %d", i)),
		})
	}

	history := SanitizeHistory(messages)
	assert.Len(t, history, 10)
	// Oldest entries dropped first.
	assert.Equal(t, "message 15", history[0].Message)
	assert.Equal(t, "message 24", history[9].Message)
}

func TestSanitizeHistoryEmpty(t *testing.T) {
	assert.Empty(t, SanitizeHistory(nil))
}
