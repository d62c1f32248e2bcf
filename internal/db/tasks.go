package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ldi/tasker/pkg/models"
)

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// LoadTasks returns every stored task in the order it was saved.
func (db *DB) LoadTasks(ctx context.Context) ([]*models.Task, error) {
	return loadTasks(ctx, db.DB)
}

func loadTasks(ctx context.Context, exec executor) ([]*models.Task, error) {
	query := `
		SELECT id, description, due_date, completed, priority
		FROM tasks
		ORDER BY position ASC
	`
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		t := &models.Task{}
		var dueDate sql.NullString
		var completed int
		if err := rows.Scan(&t.ID, &t.Description, &dueDate, &completed, &t.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if dueDate.Valid {
			due := dueDate.String
			t.DueDate = &due
		}
		t.Completed = completed == 1
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return tasks, nil
}

// SaveTasks replaces the whole table with tasks inside one transaction.
func (db *DB) SaveTasks(ctx context.Context, tasks []*models.Task) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceTasks(ctx, tx, tasks); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}

	db.logger.Info("tasks saved", "driver", db.driver, "count", len(tasks))
	db.triggerChange(ctx)
	return nil
}

func replaceTasks(ctx context.Context, exec executor, tasks []*models.Task) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	query := `
		INSERT INTO tasks (position, id, description, due_date, completed, priority)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, t := range tasks {
		completed := 0
		if t.Completed {
			completed = 1
		}
		var dueDate sql.NullString
		if t.DueDate != nil {
			dueDate = sql.NullString{String: *t.DueDate, Valid: true}
		}
		if _, err := exec.ExecContext(ctx, query, i, t.ID, t.Description, dueDate, completed, t.Priority); err != nil {
			return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
		}
	}
	return nil
}

// CountTasks returns the number of stored tasks.
func (db *DB) CountTasks(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}
