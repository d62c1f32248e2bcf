// Package store holds the task persistence contract and its file and
// in-memory implementations.
package store

import (
	"context"

	"github.com/ldi/tasker/pkg/models"
)

// Store loads and saves the full set of tasks.
//
// LoadTasks returns every persisted task, or an empty slice when nothing has
// been persisted yet. A missing backing resource is not an error.
//
// SaveTasks replaces all persisted content with tasks, in the given order.
type Store interface {
	LoadTasks(ctx context.Context) ([]*models.Task, error)
	SaveTasks(ctx context.Context, tasks []*models.Task) error
}
