package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elee1766/taskchat/src/aisdk"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		RetryCount: 1,
		RetryDelay: time.Millisecond,
	})
}

func TestChatSendsRequest(t *testing.T) {
	var got aisdk.ChatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(aisdk.ChatResponse{Text: "hello back"})
	})

	maxTokens := 150
	resp, err := client.Chat(context.Background(), &aisdk.ChatRequest{
		Model:     "command-r-08-2024",
		Message:   "hello",
		MaxTokens: &maxTokens,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello back", resp.Text)
	assert.False(t, resp.HasToolCalls())

	assert.Equal(t, "command-r-08-2024", got.Model)
	assert.Equal(t, "hello", got.Message)
	require.NotNil(t, got.MaxTokens)
	assert.Equal(t, 150, *got.MaxTokens)
}

func TestChatDecodesToolCalls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"","tool_calls":[{"name":"add_task","parameters":{"title":"buy milk"}}]}`))
	})

	resp, err := client.Chat(context.Background(), &aisdk.ChatRequest{Model: "m", Message: "hi"})
	require.NoError(t, err)
	require.True(t, resp.HasToolCalls())
	assert.Equal(t, "add_task", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"title":"buy milk"}`, string(resp.ToolCalls[0].Parameters))
}

func TestChatClassifiesErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected aisdk.ErrorKind
	}{
		{"not found", http.StatusNotFound, aisdk.ErrKindNotFound},
		{"unauthorized", http.StatusUnauthorized, aisdk.ErrKindUnauthorized},
		{"forbidden", http.StatusForbidden, aisdk.ErrKindUnauthorized},
		{"rate limited", http.StatusTooManyRequests, aisdk.ErrKindRateLimited},
		{"teapot", http.StatusTeapot, aisdk.ErrKindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"nope"}`))
			})

			_, err := client.Chat(context.Background(), &aisdk.ChatRequest{Model: "m", Message: "hi"})
			require.Error(t, err)
			assert.Equal(t, tt.expected, aisdk.KindOf(err))
		})
	}
}

func TestModelUnavailableClassification(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"model 'bogus' not found"}`))
	})

	_, err := client.Chat(context.Background(), &aisdk.ChatRequest{Model: "bogus", Message: "hi"})
	require.Error(t, err)
	assert.True(t, aisdk.IsModelUnavailable(err))
}
