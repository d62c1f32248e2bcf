package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTaskString(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{
			name: "pending with due date",
			task: Task{ID: 1, Description: "Buy milk", DueDate: strPtr("2024-01-01"), Priority: "high"},
			want: "[ ] 1. Buy milk (Due: 2024-01-01) [Priority: high]",
		},
		{
			name: "completed with due date",
			task: Task{ID: 2, Description: "Walk dog", DueDate: strPtr("2024-02-02"), Completed: true, Priority: "low"},
			want: "[✓] 2. Walk dog (Due: 2024-02-02) [Priority: low]",
		},
		{
			name: "no due date",
			task: Task{ID: 3, Description: "Read", Priority: "medium"},
			want: "[ ] 3. Read  [Priority: medium]",
		},
		{
			name: "empty due date renders like absent",
			task: Task{ID: 4, Description: "Nap", DueDate: strPtr(""), Priority: "low"},
			want: "[ ] 4. Nap  [Priority: low]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.String())
		})
	}
}

func TestTaskStatus(t *testing.T) {
	task := &Task{ID: 1, Description: "x", Priority: DefaultPriority}
	assert.Equal(t, TaskStatusPending, task.Status())

	task.MarkCompleted()
	assert.Equal(t, TaskStatusCompleted, task.Status())

	task.MarkCompleted()
	assert.True(t, task.Completed)
}

func TestTaskClone(t *testing.T) {
	task := &Task{ID: 1, Description: "x", DueDate: strPtr("2024-01-01"), Priority: "high"}
	c := task.Clone()

	*c.DueDate = "2025-01-01"
	c.Completed = true

	assert.Equal(t, "2024-01-01", *task.DueDate)
	assert.False(t, task.Completed)
}
