package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/taskdeck-be/internal/models"
)

const taskColumns = "id, title, description, status, owner_id, created_at"

// TaskStore persists tasks. Every read is scoped to an owner; there is no way
// to query tasks across owners.
type TaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// buildTaskQuery composes the listing query from filter parameters. The owner
// predicate is always present; status and search are ANDed in when set. The
// ordering keeps results stable across repeated calls on unchanged data.
func buildTaskQuery(ownerID string, filter models.TaskFilter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT " + taskColumns + " FROM tasks WHERE owner_id = ?")
	args := []any{ownerID}

	if filter.Status != nil {
		b.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	if filter.Search != "" {
		b.WriteString(" AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}

	b.WriteString(" ORDER BY created_at, id")
	return b.String(), args
}

// Query returns all tasks owned by ownerID that match the filter.
func (s *TaskStore) Query(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	query, args := buildTaskQuery(ownerID, filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()
	return s.scanTasks(rows)
}

// FindOwned retrieves a single task scoped to its owner. A task that exists
// but belongs to someone else is reported exactly like one that does not
// exist at all.
func (s *TaskStore) FindOwned(ctx context.Context, taskID, ownerID string) (models.Task, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND owner_id = ?", taskID, ownerID)
	task, err := s.scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, false, nil
		}
		return models.Task{}, false, fmt.Errorf("find task: %w", err)
	}
	return task, true, nil
}

// Insert creates a new task with status OPEN.
func (s *TaskStore) Insert(ctx context.Context, title, description, ownerID string) (models.Task, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks(id, title, description, status, owner_id) VALUES(?, ?, ?, ?, ?)",
		id, title, description, string(models.StatusOpen), ownerID)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}

	task, found, err := s.FindOwned(ctx, id, ownerID)
	if err != nil {
		return models.Task{}, err
	}
	if !found {
		return models.Task{}, fmt.Errorf("inserted task %s not found", id)
	}
	return task, nil
}

// Persist writes a mutated task back. Only the status is mutable after
// creation.
func (s *TaskStore) Persist(ctx context.Context, task models.Task) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ? WHERE id = ?", string(task.Status), task.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a single task.
func (s *TaskStore) Delete(ctx context.Context, task models.Task) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", task.ID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// scanTasks is a helper to scan multiple rows into a slice of tasks.
func (s *TaskStore) scanTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		task, err := s.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}
	return tasks, nil
}

// scanTask is a helper to scan a single row into a Task struct.
func (s *TaskStore) scanTask(scanner interface{ Scan(...interface{}) error }) (models.Task, error) {
	var task models.Task
	var status string
	err := scanner.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&task.OwnerID,
		&task.CreatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}
	task.Status = models.TaskStatus(status)
	return task, nil
}
