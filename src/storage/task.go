package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// CreateTask inserts a new task and fills in its store-assigned id.
func CreateTask(ctx context.Context, db Execer, task *Task) error {
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}

	query := `INSERT INTO tasks (user_id, title, description, completed, priority, tags, due_date, recurring, recurrence_pattern, recurring_interval, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query,
		task.UserID,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.Tags,
		task.DueDate,
		task.Recurring,
		task.RecurrencePattern,
		task.RecurringInterval,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// GetTaskByID retrieves a task by id scoped to its owner. Returns nil when no
// such task exists for that owner.
func GetTaskByID(ctx context.Context, db sqlscan.Querier, taskID int64, userID string) (*Task, error) {
	query := `SELECT id, user_id, title, description, completed, priority, tags, due_date, recurring, recurrence_pattern, recurring_interval, created_at, updated_at
		FROM tasks WHERE id = ? AND user_id = ?`
	var t Task
	err := sqlscan.Get(ctx, db, &t, query, taskID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &t, nil
}

// GetTaskIDByTitle looks up a task by exact title for one owner. Duplicate
// titles tie-break to the lowest id so resolution stays deterministic.
func GetTaskIDByTitle(ctx context.Context, db sqlscan.Querier, userID, title string) (int64, bool, error) {
	query := `SELECT id FROM tasks WHERE user_id = ? AND title = ? ORDER BY id LIMIT 1`
	var id int64
	err := sqlscan.Get(ctx, db, &id, query, userID, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}

// ListTasks returns up to limit tasks for one owner, optionally filtered by
// completion state. No ordering is guaranteed beyond owner and filter.
func ListTasks(ctx context.Context, db sqlscan.Querier, userID string, completed *bool, limit int) ([]Task, error) {
	query := `SELECT id, user_id, title, description, completed, priority, tags, due_date, recurring, recurrence_pattern, recurring_interval, created_at, updated_at
		FROM tasks WHERE user_id = ?`
	args := []any{userID}

	if completed != nil {
		query += ` AND completed = ?`
		args = append(args, *completed)
	}

	query += ` LIMIT ?`
	args = append(args, limit)

	var tasks []Task
	if err := sqlscan.Select(ctx, db, &tasks, query, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask writes the full task row back, re-stamping updated_at. The write
// stays owner-scoped so a task can never migrate between users.
func UpdateTask(ctx context.Context, db Execer, task *Task) error {
	task.UpdatedAt = time.Now().UTC()

	query := `UPDATE tasks SET title = ?, description = ?, completed = ?, priority = ?, tags = ?, due_date = ?, recurring = ?, recurrence_pattern = ?, recurring_interval = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	_, err := db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.Tags,
		task.DueDate,
		task.Recurring,
		task.RecurrencePattern,
		task.RecurringInterval,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	return err
}

// DeleteTask removes a task permanently. Returns false when nothing matched
// the id+owner pair.
func DeleteTask(ctx context.Context, db Execer, taskID int64, userID string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
