package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ldi/tasker/pkg/models"
)

const (
	fieldSeparator = ","
	fieldCount     = 5
	noneToken      = "None"
	trueToken      = "True"
	falseToken     = "False"
)

// FileStore persists tasks to a comma-delimited text file, one task per line:
//
//	id,description,due_date,completed,priority
//
// Descriptions are not escaped. A description containing a comma produces a
// line that is skipped on the next load.
type FileStore struct {
	path    string
	logger  *slog.Logger
	skipped int
}

// NewFileStore returns a store bound to path. A nil logger uses slog.Default().
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Skipped returns the number of malformed lines dropped by the last LoadTasks.
func (s *FileStore) Skipped() int {
	return s.skipped
}

func (s *FileStore) LoadTasks(ctx context.Context) ([]*models.Task, error) {
	s.skipped = 0

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("no existing task file found, starting fresh", "file", s.path)
		return []*models.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open task file: %w", err)
	}
	defer f.Close()

	tasks := []*models.Task{}
	r := bufio.NewReader(f)
	lineNo := 0
	for {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read task file: %w", err)
		}
		if line == "" && err != nil {
			break
		}

		lineNo++
		t, ok := decodeLine(line)
		if !ok {
			s.skipped++
			s.logger.Debug("skipping malformed task line", "file", s.path, "line", lineNo)
		} else {
			tasks = append(tasks, t)
		}

		if err != nil {
			break
		}
	}

	if s.skipped > 0 {
		s.logger.Debug("malformed task lines skipped", "file", s.path, "count", s.skipped)
	}
	return tasks, nil
}

func (s *FileStore) SaveTasks(ctx context.Context, tasks []*models.Task) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create task file directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create task file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, t := range tasks {
		if _, err := w.WriteString(encodeLine(t) + "\n"); err != nil {
			return fmt.Errorf("failed to write task %d: %w", t.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush task file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close task file: %w", err)
	}

	s.logger.Info("tasks saved", "file", s.path, "count", len(tasks))
	return nil
}

func encodeLine(t *models.Task) string {
	due := noneToken
	if t.DueDate != nil {
		due = *t.DueDate
	}
	completed := falseToken
	if t.Completed {
		completed = trueToken
	}
	return strings.Join([]string{
		strconv.Itoa(t.ID),
		t.Description,
		due,
		completed,
		t.Priority,
	}, fieldSeparator)
}

// decodeLine parses one stored line. Lines without exactly five fields, or
// with a non-integer id, are rejected.
func decodeLine(line string) (*models.Task, bool) {
	parts := strings.Split(strings.TrimSpace(line), fieldSeparator)
	if len(parts) != fieldCount {
		return nil, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, false
	}

	t := &models.Task{
		ID:          id,
		Description: parts[1],
		Completed:   parts[3] == trueToken,
		Priority:    parts[4],
	}
	if parts[2] != noneToken {
		due := parts[2]
		t.DueDate = &due
	}
	return t, true
}
