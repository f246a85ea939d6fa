package tool_addtask

import (
	"context"
	"database/sql"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent/toolsutil"
)

// Tool name constant
const Name = "add_task"

const addTaskPrompt = `Add a new task to the user's task list.`

// AddTaskInput represents the parameters for add_task
type AddTaskInput struct {
	Title       string `json:"title" required:"true" description:"The title of the task"`
	Description string `json:"description,omitempty" description:"Optional description of the task"`
	Priority    string `json:"priority,omitempty" description:"Priority level ('high', 'medium', 'low')"`
	DueDate     string `json:"dueDate,omitempty" description:"Due date for the task (various formats accepted)"`
	Tags        string `json:"tags,omitempty" description:"Tags for the task (comma separated if multiple)"`
	Recurring   string `json:"recurring,omitempty" description:"Recurring pattern ('daily', 'weekly', 'monthly', 'yearly')"`
	Completed   bool   `json:"completed,omitempty" description:"Whether the task is initially completed"`
	// UserID is injected by the dispatcher from the request context and
	// stripped from the schema advertised to the model.
	UserID string `json:"user_id,omitempty"`
}

// AddTaskOutput represents the response from add_task
type AddTaskOutput struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	TaskID  int64                  `json:"task_id,omitempty"`
	Task    *toolsutil.TaskPayload `json:"task,omitempty"`
}

// Tool returns the add_task tool definition
func Tool(db *storage.DB) (agent.Tool, error) {
	return agent.NewGenericTool(Name, addTaskPrompt, makeAddTaskHandler(db))
}

// makeAddTaskHandler creates a type-safe handler for the add_task tool
func makeAddTaskHandler(db *storage.DB) func(ctx context.Context, input AddTaskInput) (AddTaskOutput, error) {
	return func(ctx context.Context, input AddTaskInput) (AddTaskOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("executing tool", "tool", Name, "title", input.Title, "user_id", input.UserID)

		priority := toolsutil.CoercePriority(input.Priority)
		dueDate := toolsutil.ParseDueDate(input.DueDate)

		recurrence := toolsutil.NormalizeRecurrence(input.Recurring)
		task := &storage.Task{
			UserID:    input.UserID,
			Title:     input.Title,
			Completed: input.Completed,
			Priority:  priority,
			DueDate:   dueDate,
			Recurring: recurrence != "",
		}
		if input.Description != "" {
			task.Description = &input.Description
		}
		if input.Tags != "" {
			task.Tags = &input.Tags
		}
		if recurrence != "" {
			task.RecurrencePattern = &recurrence
		}

		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			return storage.CreateTask(ctx, tx, task)
		})
		if err != nil {
			return AddTaskOutput{}, err
		}

		logger.Info("task created", "task_id", task.ID, "user_id", input.UserID)

		return AddTaskOutput{
			Success: true,
			Message: "Task '" + task.Title + "' added successfully",
			TaskID:  task.ID,
			Task:    toolsutil.NewTaskPayload(task),
		}, nil
	}
}
