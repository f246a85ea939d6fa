package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elee1766/taskchat/src/aisdk"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent"
)

// scriptedProvider replays a fixed sequence of responses and errors, recording
// what was asked of it.
type scriptedProvider struct {
	responses []*aisdk.ChatResponse
	errs      []error

	models      []string
	messages    []string
	historyLens []int
	resultLens  []int
}

func (p *scriptedProvider) Chat(ctx context.Context, req *aisdk.ChatRequest) (*aisdk.ChatResponse, error) {
	i := len(p.models)
	p.models = append(p.models, req.Model)
	p.messages = append(p.messages, req.Message)
	p.historyLens = append(p.historyLens, len(req.ChatHistory))
	p.resultLens = append(p.resultLens, len(req.ToolResults))

	if i < len(p.errs) && p.errs[i] != nil {
		return nil, p.errs[i]
	}
	if i < len(p.responses) {
		return p.responses[i], nil
	}
	return p.responses[len(p.responses)-1], nil
}

type controllerFixture struct {
	db         *storage.DB
	controller *Controller
	provider   *scriptedProvider
	convID     string
}

func newControllerFixture(t *testing.T, provider *scriptedProvider, cfg Config) *controllerFixture {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	_, err = storage.EnsureUser(ctx, db.DB(), "user-1")
	require.NoError(t, err)

	conv := &storage.Conversation{UserID: "user-1", Title: "test"}
	require.NoError(t, storage.CreateConversation(ctx, db.DB(), conv))

	toolbox, err := taskagent.DefaultToolbox(db, testLogger())
	require.NoError(t, err)

	return &controllerFixture{
		db:         db,
		controller: NewController(provider, toolbox, db, cfg, testLogger()),
		provider:   provider,
		convID:     conv.ID,
	}
}

func (f *controllerFixture) messageCount(t *testing.T) int {
	t.Helper()
	messages, err := storage.GetMessagesByConversationID(context.Background(), f.db.DB(), f.convID)
	require.NoError(t, err)
	return len(messages)
}

func (f *controllerFixture) taskCount(t *testing.T) int {
	t.Helper()
	tasks, err := storage.ListTasks(context.Background(), f.db.DB(), "user-1", nil, 100)
	require.NoError(t, err)
	return len(tasks)
}

func addTaskCall(title string) aisdk.ToolCall {
	return aisdk.ToolCall{
		Name:       "add_task",
		Parameters: json.RawMessage(fmt.Sprintf(`{"title":%q}`, title)),
	}
}

func TestControllerFinalText(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*aisdk.ChatResponse{{Text: "All done."}},
	}
	f := newControllerFixture(t, provider, Config{})

	reply, err := f.controller.Run(context.Background(), f.convID, "user-1", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "All done.", reply)
	assert.Equal(t, 1, f.messageCount(t))
}

func TestControllerToolCallThenText(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*aisdk.ChatResponse{
			{ToolCalls: []aisdk.ToolCall{addTaskCall("buy milk")}},
			{Text: "Added buy milk."},
		},
	}
	f := newControllerFixture(t, provider, Config{})

	reply, err := f.controller.Run(context.Background(), f.convID, "user-1", "add a task", nil)
	require.NoError(t, err)
	assert.Equal(t, "Added buy milk.", reply)
	assert.Equal(t, 1, f.taskCount(t))

	// Second turn carries the results and an empty message, with two
	// synthetic history entries appended.
	require.Len(t, provider.messages, 2)
	assert.Equal(t, "add a task", provider.messages[0])
	assert.Equal(t, "", provider.messages[1])
	assert.Equal(t, 0, provider.resultLens[0])
	assert.Equal(t, 1, provider.resultLens[1])
	assert.Equal(t, provider.historyLens[0]+2, provider.historyLens[1])
}

func TestControllerAddTaskGuardrail(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*aisdk.ChatResponse{
			{ToolCalls: []aisdk.ToolCall{
				addTaskCall("a"), addTaskCall("b"), addTaskCall("c"), addTaskCall("d"),
			}},
		},
	}
	f := newControllerFixture(t, provider, Config{})

	reply, err := f.controller.Run(context.Background(), f.convID, "user-1", "add lots", nil)
	require.NoError(t, err)
	assert.Equal(t, addTaskLimitReply, reply)

	// Rejected wholesale: no task created, no assistant message persisted.
	assert.Equal(t, 0, f.taskCount(t))
	assert.Equal(t, 0, f.messageCount(t))
}

func TestControllerExactlyThreeAddTasksAllowed(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*aisdk.ChatResponse{
			{ToolCalls: []aisdk.ToolCall{
				addTaskCall("a"), addTaskCall("b"), addTaskCall("c"),
			}},
			{Text: "Added three tasks."},
		},
	}
	f := newControllerFixture(t, provider, Config{})

	reply, err := f.controller.Run(context.Background(), f.convID, "user-1", "add three", nil)
	require.NoError(t, err)
	assert.Equal(t, "Added three tasks.", reply)
	assert.Equal(t, 3, f.taskCount(t))
}

func TestControllerTurnCeiling(t *testing.T) {
	// The model never produces final text.
	provider := &scriptedProvider{
		responses: []*aisdk.ChatResponse{
			{ToolCalls: []aisdk.ToolCall{{Name: "list_tasks", Parameters: json.RawMessage(`{}`)}}},
		},
	}
	f := newControllerFixture(t, provider, Config{MaxTurns: 4})

	reply, err := f.controller.Run(context.Background(), f.convID, "user-1", "loop forever", nil)
	require.NoError(t, err)
	assert.Equal(t, maxStepsReply, reply)
	assert.Len(t, provider.models, 4)
	assert.Equal(t, 1, f.messageCount(t))
}

func TestControllerDefaultReply(t *testing.T) {
	// Neither tool calls nor text ends the loop with the default reply.
	provider := &scriptedProvider{
		responses: []*aisdk.ChatResponse{{}},
	}
	f := newControllerFixture(t, provider, Config{})

	reply, err := f.controller.Run(context.Background(), f.convID, "user-1", "hm", nil)
	require.NoError(t, err)
	assert.Equal(t, defaultReply, reply)
	assert.Equal(t, 1, f.messageCount(t))
}

func TestControllerModelFallback(t *testing.T) {
	provider := &scriptedProvider{
		errs: []error{
			&aisdk.ProviderError{Kind: aisdk.ErrKindNotFound, StatusCode: 404, Message: "model not found"},
		},
		responses: []*aisdk.ChatResponse{
			nil,
			{Text: "From the fallback."},
		},
	}
	f := newControllerFixture(t, provider, Config{Models: []string{"primary", "fallback"}})

	reply, err := f.controller.Run(context.Background(), f.convID, "user-1", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "From the fallback.", reply)
	require.Len(t, provider.models, 2)
	assert.Equal(t, "primary", provider.models[0])
	assert.Equal(t, "fallback", provider.models[1])
}

func TestControllerNoFallbackOnOtherErrors(t *testing.T) {
	provider := &scriptedProvider{
		errs: []error{
			&aisdk.ProviderError{Kind: aisdk.ErrKindRateLimited, StatusCode: 429, Message: "slow down"},
		},
		responses: []*aisdk.ChatResponse{nil},
	}
	f := newControllerFixture(t, provider, Config{Models: []string{"primary", "fallback"}})

	_, err := f.controller.Run(context.Background(), f.convID, "user-1", "hello", nil)
	require.Error(t, err)
	assert.Len(t, provider.models, 1)
}

func TestControllerNotFoundMessageEmbedded(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*aisdk.ChatResponse{
			{ToolCalls: []aisdk.ToolCall{{
				Name:       "delete_task",
				Parameters: json.RawMessage(`{"task_id":"buy milk"}`),
			}}},
			{Text: "I could not find the task 'buy milk'."},
		},
	}
	f := newControllerFixture(t, provider, Config{})

	reply, err := f.controller.Run(context.Background(), f.convID, "user-1", "delete buy milk", nil)
	require.NoError(t, err)
	assert.Contains(t, reply, "buy milk")
	assert.Equal(t, 1, provider.resultLens[1])
}
