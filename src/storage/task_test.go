package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGetTask(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	desc := "get some milk"
	task := &Task{
		UserID:      "user-1",
		Title:       "buy milk",
		Description: &desc,
		Priority:    PriorityHigh,
	}
	require.NoError(t, CreateTask(ctx, db.DB(), task))
	assert.NotZero(t, task.ID)

	got, err := GetTaskByID(ctx, db.DB(), task.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "buy milk", got.Title)
	assert.Equal(t, PriorityHigh, got.Priority)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.False(t, got.Completed)
}

func TestGetTaskByIDOwnership(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	task := &Task{UserID: "user-1", Title: "private"}
	require.NoError(t, CreateTask(ctx, db.DB(), task))

	got, err := GetTaskByID(ctx, db.DB(), task.ID, "user-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	task := &Task{UserID: "user-1", Title: "no priority"}
	require.NoError(t, CreateTask(ctx, db.DB(), task))

	got, err := GetTaskByID(ctx, db.DB(), task.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, PriorityMedium, got.Priority)
}

func TestListTasksFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, tc := range []struct {
		title     string
		completed bool
	}{
		{"a", false},
		{"b", true},
		{"c", false},
	} {
		require.NoError(t, CreateTask(ctx, db.DB(), &Task{
			UserID: "user-1", Title: tc.title, Completed: tc.completed,
		}))
	}
	require.NoError(t, CreateTask(ctx, db.DB(), &Task{UserID: "user-2", Title: "other"}))

	all, err := ListTasks(ctx, db.DB(), "user-1", nil, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	done := true
	completed, err := ListTasks(ctx, db.DB(), "user-1", &done, 10)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "b", completed[0].Title)

	pending := false
	open, err := ListTasks(ctx, db.DB(), "user-1", &pending, 10)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	limited, err := ListTasks(ctx, db.DB(), "user-1", nil, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestUpdateTask(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	task := &Task{UserID: "user-1", Title: "before"}
	require.NoError(t, CreateTask(ctx, db.DB(), task))
	created := task.UpdatedAt

	time.Sleep(10 * time.Millisecond)

	task.Title = "after"
	task.Completed = true
	pattern := "weekly"
	task.Recurring = true
	task.RecurrencePattern = &pattern
	require.NoError(t, UpdateTask(ctx, db.DB(), task))

	got, err := GetTaskByID(ctx, db.DB(), task.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.Completed)
	assert.True(t, got.Recurring)
	require.NotNil(t, got.RecurrencePattern)
	assert.Equal(t, "weekly", *got.RecurrencePattern)
	assert.True(t, got.UpdatedAt.After(created))
}

func TestDeleteTask(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	task := &Task{UserID: "user-1", Title: "doomed"}
	require.NoError(t, CreateTask(ctx, db.DB(), task))

	// Wrong owner deletes nothing.
	deleted, err := DeleteTask(ctx, db.DB(), task.ID, "user-2")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = DeleteTask(ctx, db.DB(), task.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := GetTaskByID(ctx, db.DB(), task.ID, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
