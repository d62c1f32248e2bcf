// Package tasks owns the in-memory task list and assigns task ids.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ldi/tasker/internal/store"
	"github.com/ldi/tasker/pkg/models"
)

// ErrTaskNotFound is returned by outer surfaces that need a lookup miss to be
// a failure. Manager itself reports misses as a plain false.
var ErrTaskNotFound = errors.New("task not found")

const (
	listHeader = "\n--- Current Tasks ---"
	listFooter = "--------------------"
)

// Manager is the sole mutator of the task list. Every mutation is followed by
// a full rewrite through the store.
type Manager struct {
	store  store.Store
	logger *slog.Logger

	mu     sync.Mutex
	tasks  []*models.Task
	nextID int
}

// NewManager loads all tasks from s and positions the id counter after the
// highest loaded id.
func NewManager(ctx context.Context, s store.Store, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loaded, err := s.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if loaded == nil {
		loaded = []*models.Task{}
	}

	maxID := 0
	for _, t := range loaded {
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	m := &Manager{
		store:  s,
		logger: logger,
		tasks:  loaded,
		nextID: maxID + 1,
	}
	logger.Info("loaded tasks", "count", len(loaded), "next_id", m.nextID)
	return m, nil
}

// NextID returns the id the next added task will receive.
func (m *Manager) NextID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextID
}

// AddTask appends a new pending task and persists the full list. The priority
// is stored as given; callers apply models.DefaultPriority when it is omitted.
//
// If the save fails the task stays in memory and the error is returned.
func (m *Manager) AddTask(ctx context.Context, description string, dueDate *string, priority string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &models.Task{
		ID:          m.nextID,
		Description: description,
		Priority:    priority,
	}
	if dueDate != nil {
		due := *dueDate
		t.DueDate = &due
	}

	m.tasks = append(m.tasks, t)
	m.nextID++

	if err := m.store.SaveTasks(ctx, m.tasks); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}

	m.logger.Info("task added", "id", t.ID, "description", description, "priority", priority)
	return t.Clone(), nil
}

// ListTasks writes the human-readable list to w in insertion order.
func (m *Manager) ListTasks(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := fmt.Fprintln(w, listHeader); err != nil {
		return err
	}
	for _, t := range m.tasks {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, listFooter)
	return err
}

// Tasks returns copies of all tasks in insertion order.
func (m *Manager) Tasks() []*models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// GetTaskByID returns a copy of the task with the given id.
func (m *Manager) GetTaskByID(id int) (*models.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.find(id)
	if t == nil {
		return nil, false
	}
	return t.Clone(), true
}

// MarkTaskCompleted completes the task and persists the list. An unknown id
// returns false without touching storage.
func (m *Manager) MarkTaskCompleted(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.find(id)
	if t == nil {
		m.logger.Info("task not found", "id", id)
		return false, nil
	}

	t.MarkCompleted()
	if err := m.store.SaveTasks(ctx, m.tasks); err != nil {
		return false, fmt.Errorf("failed to save tasks: %w", err)
	}

	m.logger.Info("task marked as completed", "id", id)
	return true, nil
}

func (m *Manager) find(id int) *models.Task {
	for _, t := range m.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
