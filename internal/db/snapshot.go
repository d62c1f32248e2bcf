package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ldi/tasker/internal/export"
)

// EnableAutoSnapshot sets up a hook that automatically exports a snapshot
// to the given path after every successful save.
func (db *DB) EnableAutoSnapshot(path string) {
	db.SetOnChange(func(ctx context.Context) {
		// Hooks are best-effort; a failed export must not fail the save.
		if err := db.ExportSnapshot(ctx, path); err != nil {
			db.logger.Warn("failed to export snapshot", "path", path, "error", err)
		}
	})
}

// ExportSnapshot writes all tasks as JSONL to path atomically using a
// temporary file.
func (db *DB) ExportSnapshot(ctx context.Context, path string) error {
	tasks, err := db.LoadTasks(ctx)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "snapshot-*.jsonl")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempFile.Name())
		}
	}()

	if err := export.WriteSnapshot(tempFile, tasks); err != nil {
		return err
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	filename := tempFile.Name()
	tempFile = nil // Prevent defer from removing it

	if err := os.Rename(filename, path); err != nil {
		os.Remove(filename)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// ImportSnapshot reads a JSONL snapshot and replaces the stored tasks with
// its contents in a single transaction.
func (db *DB) ImportSnapshot(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	tasks, err := export.ReadSnapshot(file)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceTasks(ctx, tx, tasks); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	db.logger.Info("snapshot imported", "path", path, "count", len(tasks))
	return nil
}
