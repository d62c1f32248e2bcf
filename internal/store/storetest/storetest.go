// Package storetest runs the shared Store contract against any backend.
package storetest

import (
	"context"
	"testing"

	"github.com/ldi/tasker/internal/store"
	"github.com/ldi/tasker/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store. Calling it twice within one test must
// return two stores over the same backing resource so reloads can be checked.
type Factory func(t *testing.T) (open func() store.Store)

func strPtr(s string) *string { return &s }

// Run exercises the load/save contract shared by every Store.
func Run(t *testing.T, factory Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty store loads nothing", func(t *testing.T) {
		open := factory(t)
		tasks, err := open().LoadTasks(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("round trip keeps order and fields", func(t *testing.T) {
		open := factory(t)
		want := []*models.Task{
			{ID: 3, Description: "Buy milk", DueDate: strPtr("2024-01-01"), Priority: "high"},
			{ID: 1, Description: "Call mom", Completed: true, Priority: "low"},
			{ID: 7, Description: "Write report", DueDate: strPtr("2024-03-15"), Completed: true, Priority: "urgent"},
		}
		require.NoError(t, open().SaveTasks(ctx, want))

		got, err := open().LoadTasks(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save replaces previous content", func(t *testing.T) {
		open := factory(t)
		s := open()
		require.NoError(t, s.SaveTasks(ctx, []*models.Task{
			{ID: 1, Description: "a", Priority: "medium"},
			{ID: 2, Description: "b", Priority: "medium"},
		}))
		require.NoError(t, s.SaveTasks(ctx, []*models.Task{
			{ID: 5, Description: "c", Priority: "low"},
		}))

		got, err := open().LoadTasks(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 5, got[0].ID)
		assert.Equal(t, "c", got[0].Description)
	})

	t.Run("saving empty set clears store", func(t *testing.T) {
		open := factory(t)
		s := open()
		require.NoError(t, s.SaveTasks(ctx, []*models.Task{{ID: 1, Description: "a", Priority: "medium"}}))
		require.NoError(t, s.SaveTasks(ctx, nil))

		got, err := open().LoadTasks(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
