package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserCreatesPlaceholder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user, err := EnsureUser(ctx, db.DB(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "user-1@placeholder.com", user.Email)

	// Second call finds, not creates.
	again, err := EnsureUser(ctx, db.DB(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, user.Email, again.Email)
}

func TestConversationAndMessages(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	conv := &Conversation{UserID: "user-1", Title: "Conversation test"}
	require.NoError(t, CreateConversation(ctx, db.DB(), conv))
	assert.NotEmpty(t, conv.ID)

	content := "hello"
	require.NoError(t, CreateMessage(ctx, db.DB(), &Message{
		ConversationID: conv.ID,
		Role:           RoleUser,
		Content:        &content,
	}))
	require.NoError(t, CreateMessage(ctx, db.DB(), &Message{
		ConversationID: conv.ID,
		Role:           RoleAssistant,
		Content:        nil,
	}))

	messages, err := GetMessagesByConversationID(ctx, db.DB(), conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	require.NotNil(t, messages[0].Content)
	assert.Equal(t, "hello", *messages[0].Content)
	assert.Nil(t, messages[1].Content)

	conversations, err := ListConversationsByUserID(ctx, db.DB(), "user-1")
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, conv.ID, conversations[0].ID)
}
