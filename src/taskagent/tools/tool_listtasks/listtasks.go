package tool_listtasks

import (
	"context"
	"fmt"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent/toolsutil"
)

// Tool name constant
const Name = "list_tasks"

const listTasksPrompt = `List tasks for the user with optional filtering.`

const defaultLimit = 10

// ListTasksInput represents the parameters for list_tasks
type ListTasksInput struct {
	Status string `json:"status,omitempty" description:"Filter by status ('completed', 'pending', or omit for all)"`
	Limit  int    `json:"limit,omitempty" default:"10" description:"Maximum number of tasks to return"`
	// UserID is injected by the dispatcher from the request context and
	// stripped from the schema advertised to the model.
	UserID string `json:"user_id,omitempty"`
}

// ListTasksOutput represents the response from list_tasks
type ListTasksOutput struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Tasks   []*toolsutil.TaskPayload `json:"tasks"`
	Count   int                      `json:"count"`
}

// Tool returns the list_tasks tool definition
func Tool(db *storage.DB) (agent.Tool, error) {
	return agent.NewGenericTool(Name, listTasksPrompt, makeListTasksHandler(db))
}

// makeListTasksHandler creates a type-safe handler for the list_tasks tool
func makeListTasksHandler(db *storage.DB) func(ctx context.Context, input ListTasksInput) (ListTasksOutput, error) {
	return func(ctx context.Context, input ListTasksInput) (ListTasksOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("executing tool", "tool", Name, "status", input.Status, "user_id", input.UserID)

		limit := input.Limit
		if limit <= 0 {
			limit = defaultLimit
		}

		var completed *bool
		switch input.Status {
		case "completed":
			v := true
			completed = &v
		case "pending":
			v := false
			completed = &v
		}

		tasks, err := storage.ListTasks(ctx, db.DB(), input.UserID, completed, limit)
		if err != nil {
			return ListTasksOutput{}, err
		}

		payloads := make([]*toolsutil.TaskPayload, len(tasks))
		for i := range tasks {
			payloads[i] = toolsutil.NewTaskPayload(&tasks[i])
		}

		return ListTasksOutput{
			Success: true,
			Message: fmt.Sprintf("Retrieved %d tasks", len(payloads)),
			Tasks:   payloads,
			Count:   len(payloads),
		}, nil
	}
}
