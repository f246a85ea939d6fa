package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/aisdk"
)

type captureInput struct {
	Title   string `json:"title" required:"true"`
	DueDate string `json:"dueDate,omitempty"`
	UserID  string `json:"user_id,omitempty"`
}

type captureOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// newCaptureToolbox registers a tool named add_task that records the input it
// was invoked with.
func newCaptureToolbox(t *testing.T, captured *captureInput) *agent.Toolbox {
	t.Helper()
	tool, err := agent.NewGenericTool("add_task", "capture", func(ctx context.Context, input captureInput) (captureOutput, error) {
		*captured = input
		return captureOutput{Success: true, Message: "ok"}, nil
	})
	require.NoError(t, err)

	tb := agent.NewToolbox()
	require.NoError(t, tb.RegisterTool(tool))
	return tb
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDispatchUnknownTool(t *testing.T) {
	var captured captureInput
	d := NewDispatcher(newCaptureToolbox(t, &captured), testLogger())

	outputs, err := d.Dispatch(context.Background(), "user-1", &aisdk.ToolCall{
		Name:       "frobnicate",
		Parameters: json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	result := outputs[0]["result"].(map[string]any)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "Unknown tool: frobnicate", result["message"])
}

func TestDispatchInjectsUserID(t *testing.T) {
	var captured captureInput
	d := NewDispatcher(newCaptureToolbox(t, &captured), testLogger())

	// The model tried to act as someone else; the injection overwrites it.
	_, err := d.Dispatch(context.Background(), "user-1", &aisdk.ToolCall{
		Name:       "add_task",
		Parameters: json.RawMessage(`{"title":"buy milk","user_id":"victim"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", captured.UserID)
}

func TestDispatchDueDateAlias(t *testing.T) {
	var captured captureInput
	d := NewDispatcher(newCaptureToolbox(t, &captured), testLogger())

	_, err := d.Dispatch(context.Background(), "user-1", &aisdk.ToolCall{
		Name:       "add_task",
		Parameters: json.RawMessage(`{"title":"t","due_date":"2026-01-02"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02", captured.DueDate)
}

func TestDispatchDueDateCanonicalWins(t *testing.T) {
	var captured captureInput
	d := NewDispatcher(newCaptureToolbox(t, &captured), testLogger())

	_, err := d.Dispatch(context.Background(), "user-1", &aisdk.ToolCall{
		Name:       "add_task",
		Parameters: json.RawMessage(`{"title":"t","due_date":"2026-01-02","dueDate":"2026-03-04"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", captured.DueDate)
}

func TestDispatchValidationFailureIsTolerated(t *testing.T) {
	var captured captureInput
	d := NewDispatcher(newCaptureToolbox(t, &captured), testLogger())

	// Missing required title: the tool reports an error output, the turn
	// survives.
	outputs, err := d.Dispatch(context.Background(), "user-1", &aisdk.ToolCall{
		Name:       "add_task",
		Parameters: json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	result := outputs[0]["result"].(map[string]any)
	assert.Equal(t, false, result["success"])
	assert.Contains(t, result["message"], "validation failed")
}
