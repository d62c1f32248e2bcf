package db

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ldi/tasker/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportSnapshot(t *testing.T) {
	ctx := context.Background()
	source := openTestDB(t, ":memory:")

	want := []*models.Task{
		{ID: 1, Description: "Buy milk", DueDate: strPtr("2024-01-01"), Priority: "high"},
		{ID: 2, Description: "Read", Completed: true, Priority: "low"},
	}
	require.NoError(t, source.SaveTasks(ctx, want))

	snapshotPath := filepath.Join(t.TempDir(), "out", "snapshot.jsonl")
	require.NoError(t, source.ExportSnapshot(ctx, snapshotPath))

	data, err := os.ReadFile(snapshotPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(snapshotPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	target := openTestDB(t, ":memory:")
	require.NoError(t, target.SaveTasks(ctx, []*models.Task{{ID: 9, Description: "old", Priority: "low"}}))
	require.NoError(t, target.ImportSnapshot(ctx, snapshotPath))

	got, err := target.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestImportSnapshotMissingFile(t *testing.T) {
	database := openTestDB(t, ":memory:")
	err := database.ImportSnapshot(context.Background(), filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}

func TestAutoSnapshot(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t, ":memory:")

	snapshotPath := filepath.Join(t.TempDir(), "auto-snapshot.jsonl")
	database.EnableAutoSnapshot(snapshotPath)

	_, err := os.Stat(snapshotPath)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, database.SaveTasks(ctx, []*models.Task{{ID: 1, Description: "auto", Priority: "low"}}))

	data, err := os.ReadFile(snapshotPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":"auto"`)
}
