package tool_completetask

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent/toolsutil"
)

// Tool name constant
const Name = "complete_task"

const completeTaskPrompt = `Mark a task as completed. The task can be referenced by its numeric ID or by its exact title.`

// CompleteTaskInput represents the parameters for complete_task
type CompleteTaskInput struct {
	TaskID string `json:"task_id" required:"true" description:"ID or title of the task to complete"`
	// UserID is injected by the dispatcher from the request context and
	// stripped from the schema advertised to the model.
	UserID string `json:"user_id,omitempty"`
}

// CompleteTaskOutput represents the response from complete_task
type CompleteTaskOutput struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Task    *CompletedTask `json:"task,omitempty"`
}

// CompletedTask is the minimal payload confirming the state change.
type CompletedTask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Tool returns the complete_task tool definition
func Tool(db *storage.DB) (agent.Tool, error) {
	return agent.NewGenericTool(Name, completeTaskPrompt, makeCompleteTaskHandler(db))
}

// makeCompleteTaskHandler creates a type-safe handler for the complete_task tool
func makeCompleteTaskHandler(db *storage.DB) func(ctx context.Context, input CompleteTaskInput) (CompleteTaskOutput, error) {
	return func(ctx context.Context, input CompleteTaskInput) (CompleteTaskOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("executing tool", "tool", Name, "task_id", input.TaskID, "user_id", input.UserID)

		notFound := CompleteTaskOutput{
			Success: false,
			Message: fmt.Sprintf("Task '%s' not found", input.TaskID),
		}

		taskID, ok, err := storage.ResolveTaskID(ctx, db.DB(), input.UserID, input.TaskID)
		if err != nil {
			return CompleteTaskOutput{}, err
		}
		if !ok {
			logger.Info("task not found", "identifier", input.TaskID, "user_id", input.UserID)
			return notFound, nil
		}

		var task *storage.Task
		err = db.WithTx(ctx, func(tx *sql.Tx) error {
			task, err = storage.GetTaskByID(ctx, tx, taskID, input.UserID)
			if err != nil || task == nil {
				return err
			}
			task.Completed = true
			return storage.UpdateTask(ctx, tx, task)
		})
		if err != nil {
			return CompleteTaskOutput{}, err
		}
		if task == nil {
			logger.Info("task not found", "task_id", taskID, "user_id", input.UserID)
			return notFound, nil
		}

		return CompleteTaskOutput{
			Success: true,
			Message: fmt.Sprintf("Task '%s' marked as completed", task.Title),
			Task: &CompletedTask{
				ID:        task.ID,
				Title:     task.Title,
				Completed: task.Completed,
			},
		}, nil
	}
}
