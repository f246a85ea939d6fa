package tool_updatetask

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent/toolsutil"
)

// Tool name constant
const Name = "update_task"

const updateTaskPrompt = `Update a task with new information. The task can be referenced by its numeric ID or by its exact title. Only the fields present in 'updates' are changed.`

// UpdateTaskInput represents the parameters for update_task
type UpdateTaskInput struct {
	TaskID  string         `json:"task_id" required:"true" description:"ID or title of the task to update"`
	Updates map[string]any `json:"updates" required:"true" description:"Dictionary of fields to update"`
	// UserID is injected by the dispatcher from the request context and
	// stripped from the schema advertised to the model.
	UserID string `json:"user_id,omitempty"`
}

// UpdateTaskOutput represents the response from update_task
type UpdateTaskOutput struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Task    *toolsutil.TaskPayload `json:"task,omitempty"`
}

// Tool returns the update_task tool definition
func Tool(db *storage.DB) (agent.Tool, error) {
	return agent.NewGenericTool(Name, updateTaskPrompt, makeUpdateTaskHandler(db))
}

// makeUpdateTaskHandler creates a type-safe handler for the update_task tool
func makeUpdateTaskHandler(db *storage.DB) func(ctx context.Context, input UpdateTaskInput) (UpdateTaskOutput, error) {
	return func(ctx context.Context, input UpdateTaskInput) (UpdateTaskOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("executing tool", "tool", Name, "task_id", input.TaskID, "user_id", input.UserID)

		notFound := UpdateTaskOutput{
			Success: false,
			Message: fmt.Sprintf("Task '%s' not found", input.TaskID),
		}

		taskID, ok, err := storage.ResolveTaskID(ctx, db.DB(), input.UserID, input.TaskID)
		if err != nil {
			return UpdateTaskOutput{}, err
		}
		if !ok {
			logger.Info("task not found", "identifier", input.TaskID, "user_id", input.UserID)
			return notFound, nil
		}

		patch := buildPatch(input.Updates)

		var task *storage.Task
		err = db.WithTx(ctx, func(tx *sql.Tx) error {
			task, err = storage.GetTaskByID(ctx, tx, taskID, input.UserID)
			if err != nil || task == nil {
				return err
			}
			patch.apply(task)
			return storage.UpdateTask(ctx, tx, task)
		})
		if err != nil {
			return UpdateTaskOutput{}, err
		}
		if task == nil {
			logger.Info("task not found", "task_id", taskID, "user_id", input.UserID)
			return notFound, nil
		}

		return UpdateTaskOutput{
			Success: true,
			Message: fmt.Sprintf("Task '%s' updated successfully", task.Title),
			Task:    toolsutil.NewTaskPayload(task),
		}, nil
	}
}
