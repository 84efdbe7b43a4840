package services

import (
	"context"

	"github.com/isdelr/taskdeck-be/internal/models"
)

// TaskStoreProvider defines the storage contract the task service depends on.
type TaskStoreProvider interface {
	Query(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)
	FindOwned(ctx context.Context, taskID, ownerID string) (models.Task, bool, error)
	Insert(ctx context.Context, title, description, ownerID string) (models.Task, error)
	Persist(ctx context.Context, task models.Task) error
	Delete(ctx context.Context, task models.Task) error
}

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)
	GetOwned(ctx context.Context, taskID, ownerID string) (models.Task, error)
	Create(ctx context.Context, title, description, ownerID string) (models.Task, error)
	UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus, ownerID string) (models.Task, error)
	Delete(ctx context.Context, taskID, ownerID string) error
}

// TaskService provides owner-scoped task operations. Every read and write is
// restricted to the authenticated owner; a task someone else owns surfaces as
// ErrTaskNotFound, never as a forbidden signal.
type TaskService struct {
	tasks TaskStoreProvider
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStoreProvider) *TaskService {
	return &TaskService{tasks: tasks}
}

// List returns the owner's tasks matching the filter.
func (s *TaskService) List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	return s.tasks.Query(ctx, ownerID, filter)
}

// GetOwned retrieves a single task owned by ownerID.
func (s *TaskService) GetOwned(ctx context.Context, taskID, ownerID string) (models.Task, error) {
	task, found, err := s.tasks.FindOwned(ctx, taskID, ownerID)
	if err != nil {
		return models.Task{}, err
	}
	if !found {
		return models.Task{}, ErrTaskNotFound
	}
	return task, nil
}

// Create creates a new OPEN task owned by ownerID.
func (s *TaskService) Create(ctx context.Context, title, description, ownerID string) (models.Task, error) {
	return s.tasks.Insert(ctx, title, description, ownerID)
}

// UpdateStatus moves an owned task to a new status. Title, description and
// owner are untouched.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus, ownerID string) (models.Task, error) {
	task, err := s.GetOwned(ctx, taskID, ownerID)
	if err != nil {
		return models.Task{}, err
	}

	task.Status = status
	if err := s.tasks.Persist(ctx, task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Delete removes an owned task.
func (s *TaskService) Delete(ctx context.Context, taskID, ownerID string) error {
	task, err := s.GetOwned(ctx, taskID, ownerID)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, task)
}
