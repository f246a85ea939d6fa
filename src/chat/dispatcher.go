package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/aisdk"
)

// Dispatcher executes model-issued tool calls against the toolbox. It owns
// the trust boundary: the acting user's id is always injected into the call
// parameters, overwriting anything the model put there.
type Dispatcher struct {
	toolbox *agent.Toolbox
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher over the given toolbox.
func NewDispatcher(toolbox *agent.Toolbox, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{toolbox: toolbox, logger: logger}
}

// Dispatch runs a single tool call for userID and returns the outputs to
// echo back to the model. Problems the model can correct (unknown tool,
// bad arguments, missing task) come back as a failure output with a nil
// error; a non-nil error means infrastructure failure and aborts the turn.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, call *aisdk.ToolCall) ([]map[string]any, error) {
	if !d.toolbox.HasTool(call.Name) {
		d.logger.Warn("model requested unknown tool", "tool", call.Name)
		return failureOutput(fmt.Sprintf("Unknown tool: %s", call.Name)), nil
	}

	params, err := d.prepareParameters(userID, call)
	if err != nil {
		d.logger.Warn("unparseable tool parameters", "tool", call.Name, "error", err)
		return failureOutput(fmt.Sprintf("Invalid parameters for tool %s", call.Name)), nil
	}

	resp, err := d.toolbox.ExecuteTool(ctx, &aisdk.ToolCall{Name: call.Name, Parameters: params})
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", call.Name, err)
	}

	if resp.IsError {
		return failureOutput(string(resp.Content)), nil
	}

	var output map[string]any
	if err := json.Unmarshal(resp.Content, &output); err != nil {
		return nil, fmt.Errorf("tool %s returned malformed output: %w", call.Name, err)
	}
	return []map[string]any{{"result": output}}, nil
}

// prepareParameters normalizes the raw call parameters: the owner id is
// injected unconditionally, and add_task accepts due_date as an alias for
// dueDate, with dueDate winning when both are present.
func (d *Dispatcher) prepareParameters(userID string, call *aisdk.ToolCall) (json.RawMessage, error) {
	params := map[string]any{}
	if len(call.Parameters) > 0 {
		if err := json.Unmarshal(call.Parameters, &params); err != nil {
			return nil, err
		}
	}

	if call.Name == "add_task" {
		if v, ok := params["due_date"]; ok {
			if _, hasCanonical := params["dueDate"]; !hasCanonical {
				params["dueDate"] = v
			}
			delete(params, "due_date")
		}
	}

	params["user_id"] = userID

	return json.Marshal(params)
}

func failureOutput(message string) []map[string]any {
	return []map[string]any{{
		"result": map[string]any{
			"success": false,
			"message": message,
		},
	}}
}
