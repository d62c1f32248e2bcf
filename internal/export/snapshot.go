package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ldi/tasker/pkg/models"
)

const (
	recordMeta = "meta"
	recordTask = "task"

	snapshotVersion = 1
)

type metaRecord struct {
	RecordType string `json:"record_type"`
	Version    int    `json:"version"`
	TaskCount  int    `json:"task_count"`
}

type taskRecord struct {
	RecordType string `json:"record_type"`
	*models.Task
}

// WriteSnapshot writes a meta line followed by one JSON line per task.
func WriteSnapshot(w io.Writer, tasks []*models.Task) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(metaRecord{RecordType: recordMeta, Version: snapshotVersion, TaskCount: len(tasks)}); err != nil {
		return fmt.Errorf("failed to write snapshot meta: %w", err)
	}
	for _, t := range tasks {
		if err := enc.Encode(taskRecord{RecordType: recordTask, Task: t}); err != nil {
			return fmt.Errorf("failed to write snapshot task %d: %w", t.ID, err)
		}
	}
	return nil
}

// ReadSnapshot parses a JSONL snapshot. Unknown record types are ignored.
func ReadSnapshot(r io.Reader) ([]*models.Task, error) {
	tasks := []*models.Task{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var base struct {
			RecordType string `json:"record_type"`
		}
		if err := json.Unmarshal(line, &base); err != nil {
			return nil, fmt.Errorf("failed to unmarshal base record: %w", err)
		}

		switch base.RecordType {
		case recordMeta:
			// Skip meta
		case recordTask:
			t := &models.Task{}
			if err := json.Unmarshal(line, t); err != nil {
				return nil, fmt.Errorf("failed to unmarshal task: %w", err)
			}
			tasks = append(tasks, t)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return tasks, nil
}
