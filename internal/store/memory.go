package store

import (
	"context"
	"sync"

	"github.com/ldi/tasker/pkg/models"
)

// MemoryStore keeps the last saved task set in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	tasks []*models.Task
	saves int
}

// NewMemoryStore returns a store seeded with copies of tasks.
func NewMemoryStore(tasks ...*models.Task) *MemoryStore {
	return &MemoryStore{tasks: cloneTasks(tasks)}
}

func (s *MemoryStore) LoadTasks(ctx context.Context) ([]*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks), nil
}

func (s *MemoryStore) SaveTasks(ctx context.Context, tasks []*models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cloneTasks(tasks)
	s.saves++
	return nil
}

// Saves reports how many times SaveTasks has been called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func cloneTasks(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}
