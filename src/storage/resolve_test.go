package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTaskIDNumericFastPath(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// No rows exist; a numeric identifier still resolves without a lookup.
	id, ok, err := ResolveTaskID(ctx, db.DB(), "user-1", "42")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestResolveTaskIDByTitle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	task := &Task{UserID: "user-1", Title: "buy milk"}
	require.NoError(t, CreateTask(ctx, db.DB(), task))

	id, ok, err := ResolveTaskID(ctx, db.DB(), "user-1", "buy milk")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, task.ID, id)
}

func TestResolveTaskIDDuplicateTitles(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := &Task{UserID: "user-1", Title: "dup"}
	require.NoError(t, CreateTask(ctx, db.DB(), first))
	second := &Task{UserID: "user-1", Title: "dup"}
	require.NoError(t, CreateTask(ctx, db.DB(), second))

	// Lowest id wins.
	id, ok, err := ResolveTaskID(ctx, db.DB(), "user-1", "dup")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first.ID, id)
}

func TestResolveTaskIDOwnershipIsolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	task := &Task{UserID: "user-1", Title: "mine"}
	require.NoError(t, CreateTask(ctx, db.DB(), task))

	_, ok, err := ResolveTaskID(ctx, db.DB(), "user-2", "mine")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveTaskIDNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, ok, err := ResolveTaskID(ctx, db.DB(), "user-1", "does not exist")
	require.NoError(t, err)
	assert.False(t, ok)
}
