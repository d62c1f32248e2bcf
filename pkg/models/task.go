package models

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// DefaultPriority is used when a task is added without a priority.
const DefaultPriority = "medium"

type Task struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
}

// Status derives the lifecycle state from the completion flag.
func (t *Task) Status() TaskStatus {
	if t.Completed {
		return TaskStatusCompleted
	}
	return TaskStatusPending
}

// MarkCompleted moves the task to its terminal state. There is no way back.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// Clone returns a copy that shares no memory with t.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}

func (t *Task) String() string {
	mark := " "
	if t.Completed {
		mark = "✓"
	}
	due := ""
	if t.DueDate != nil && *t.DueDate != "" {
		due = fmt.Sprintf("(Due: %s)", *t.DueDate)
	}
	line := fmt.Sprintf("[%s] %d. %s %s [Priority: %s]", mark, t.ID, t.Description, due, t.Priority)
	return strings.TrimSpace(line)
}
