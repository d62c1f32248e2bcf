package db

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ldi/tasker/internal/store"
	"github.com/ldi/tasker/internal/store/storetest"
	"github.com/ldi/tasker/internal/tasks"
	"github.com/ldi/tasker/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	database, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	database.SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, database.Init(context.Background()))
	return database
}

func TestDBStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) func() store.Store {
		path := filepath.Join(t.TempDir(), "tasks.db")
		database := openTestDB(t, path)
		return func() store.Store { return database }
	})
}

func TestSaveTasksTriggersChange(t *testing.T) {
	database := openTestDB(t, ":memory:")
	ctx := context.Background()

	calls := 0
	database.SetOnChange(func(ctx context.Context) { calls++ })

	require.NoError(t, database.SaveTasks(ctx, []*models.Task{{ID: 1, Description: "a", Priority: "low"}}))
	assert.Equal(t, 1, calls)

	require.NoError(t, database.SaveTasks(ctx, nil))
	assert.Equal(t, 2, calls)

	database.SetOnChange(nil)
	require.NoError(t, database.SaveTasks(ctx, nil))
	assert.Equal(t, 2, calls)
}

func TestSaveTasksDuplicateIDRollsBack(t *testing.T) {
	database := openTestDB(t, ":memory:")
	ctx := context.Background()

	require.NoError(t, database.SaveTasks(ctx, []*models.Task{{ID: 1, Description: "keep", Priority: "low"}}))

	err := database.SaveTasks(ctx, []*models.Task{
		{ID: 2, Description: "a", Priority: "low"},
		{ID: 2, Description: "b", Priority: "low"},
	})
	require.Error(t, err)

	got, err := database.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].Description)
}

func TestCountTasks(t *testing.T) {
	database := openTestDB(t, ":memory:")
	ctx := context.Background()

	require.NoError(t, database.SaveTasks(ctx, []*models.Task{
		{ID: 1, Description: "a", Priority: "low"},
		{ID: 2, Description: "b", DueDate: strPtr("2024-01-01"), Priority: "high"},
	}))

	count, err := database.CountTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestManagerOverDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	database := openTestDB(t, path)
	m, err := tasks.NewManager(ctx, database, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, m.NextID())

	_, err = m.AddTask(ctx, "Buy milk", strPtr("2024-01-01"), "high")
	require.NoError(t, err)
	_, err = m.AddTask(ctx, "Read", nil, "")
	require.NoError(t, err)
	done, err := m.MarkTaskCompleted(ctx, 1)
	require.NoError(t, err)
	require.True(t, done)

	reloaded, err := tasks.NewManager(ctx, database, logger)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.NextID())

	first, ok := reloaded.GetTaskByID(1)
	require.True(t, ok)
	assert.True(t, first.Completed)
	assert.Equal(t, "2024-01-01", *first.DueDate)

	second, ok := reloaded.GetTaskByID(2)
	require.True(t, ok)
	assert.Nil(t, second.DueDate)
	assert.Equal(t, "", second.Priority)
}
