package tool_deletetask

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent/toolsutil"
)

// Tool name constant
const Name = "delete_task"

const deleteTaskPrompt = `Delete a task from the user's list permanently. The task can be referenced by its numeric ID or by its exact title. This cannot be undone.`

// DeleteTaskInput represents the parameters for delete_task
type DeleteTaskInput struct {
	TaskID string `json:"task_id" required:"true" description:"ID or title of the task to delete"`
	// UserID is injected by the dispatcher from the request context and
	// stripped from the schema advertised to the model.
	UserID string `json:"user_id,omitempty"`
}

// DeleteTaskOutput represents the response from delete_task
type DeleteTaskOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Tool returns the delete_task tool definition
func Tool(db *storage.DB) (agent.Tool, error) {
	return agent.NewGenericTool(Name, deleteTaskPrompt, makeDeleteTaskHandler(db))
}

// makeDeleteTaskHandler creates a type-safe handler for the delete_task tool
func makeDeleteTaskHandler(db *storage.DB) func(ctx context.Context, input DeleteTaskInput) (DeleteTaskOutput, error) {
	return func(ctx context.Context, input DeleteTaskInput) (DeleteTaskOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("executing tool", "tool", Name, "task_id", input.TaskID, "user_id", input.UserID)

		notFound := DeleteTaskOutput{
			Success: false,
			Message: fmt.Sprintf("Task '%s' not found", input.TaskID),
		}

		taskID, ok, err := storage.ResolveTaskID(ctx, db.DB(), input.UserID, input.TaskID)
		if err != nil {
			return DeleteTaskOutput{}, err
		}
		if !ok {
			logger.Info("task not found", "identifier", input.TaskID, "user_id", input.UserID)
			return notFound, nil
		}

		var task *storage.Task
		var deleted bool
		err = db.WithTx(ctx, func(tx *sql.Tx) error {
			task, err = storage.GetTaskByID(ctx, tx, taskID, input.UserID)
			if err != nil || task == nil {
				return err
			}
			deleted, err = storage.DeleteTask(ctx, tx, taskID, input.UserID)
			return err
		})
		if err != nil {
			return DeleteTaskOutput{}, err
		}
		if task == nil || !deleted {
			logger.Info("task not found", "task_id", taskID, "user_id", input.UserID)
			return notFound, nil
		}

		logger.Info("task deleted", "task_id", taskID, "user_id", input.UserID)

		return DeleteTaskOutput{
			Success: true,
			Message: fmt.Sprintf("Task '%s' deleted successfully", task.Title),
		}, nil
	}
}
