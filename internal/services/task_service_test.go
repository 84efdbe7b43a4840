package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/taskdeck-be/internal/models"
	"github.com/isdelr/taskdeck-be/internal/services"
	"github.com/isdelr/taskdeck-be/internal/storage"
)

func newTaskFixture(t *testing.T) (*services.TaskService, models.User, models.User) {
	t.Helper()
	db := newTestDB(t)
	users := storage.NewUserStore(db)
	ctx := context.Background()

	alice, err := users.Create(ctx, "alice@example.com", "hash-a")
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := users.Create(ctx, "bob@example.com", "hash-b")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	return services.NewTaskService(storage.NewTaskStore(db)), alice, bob
}

func TestTaskCrossUserIsolation(t *testing.T) {
	service, alice, bob := newTaskFixture(t)
	ctx := context.Background()

	task, err := service.Create(ctx, "Buy milk", "Get two liters", alice.ID)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Bob never sees alice's task, even by its exact id, and the error is
	// not-found rather than anything hinting the task exists.
	if _, err := service.GetOwned(ctx, task.ID, bob.ID); !errors.Is(err, services.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	tasks, err := service.List(ctx, bob.ID, models.TaskFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("bob must not see alice's tasks: %+v", tasks)
	}

	// Mutations from the wrong owner fail with the same error and leave no
	// side effects.
	if _, err := service.UpdateStatus(ctx, task.ID, models.StatusDone, bob.ID); !errors.Is(err, services.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if err := service.Delete(ctx, task.ID, bob.ID); !errors.Is(err, services.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	got, err := service.GetOwned(ctx, task.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetOwned error: %v", err)
	}
	if got.Status != models.StatusOpen {
		t.Fatalf("foreign update must not change the task: %+v", got)
	}
}

func TestUpdateStatusMutatesOnlyStatus(t *testing.T) {
	service, alice, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := service.Create(ctx, "Buy milk", "Get two liters", alice.ID)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := service.UpdateStatus(ctx, task.ID, models.StatusInProgress, alice.ID)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
	}
	if updated.Title != task.Title || updated.Description != task.Description || updated.OwnerID != task.OwnerID {
		t.Fatalf("update touched more than the status: %+v", updated)
	}

	got, err := service.GetOwned(ctx, task.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetOwned error: %v", err)
	}
	if got.Status != models.StatusInProgress {
		t.Fatalf("status change was not persisted: %+v", got)
	}
}

func TestUpdateStatusMissingTask(t *testing.T) {
	service, alice, _ := newTaskFixture(t)

	_, err := service.UpdateStatus(context.Background(), "no-such-id", models.StatusDone, alice.ID)
	if !errors.Is(err, services.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestDeleteThenGet(t *testing.T) {
	service, alice, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := service.Create(ctx, "Buy milk", "Get two liters", alice.ID)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := service.Delete(ctx, task.ID, alice.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := service.GetOwned(ctx, task.ID, alice.ID); !errors.Is(err, services.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestListDelegatesFilter(t *testing.T) {
	service, alice, _ := newTaskFixture(t)
	ctx := context.Background()

	milk, err := service.Create(ctx, "Buy milk", "Get two liters", alice.ID)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := service.Create(ctx, "Clean house", "Vacuum everywhere", alice.ID); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	tasks, err := service.List(ctx, alice.ID, models.TaskFilter{Search: "milk"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != milk.ID {
		t.Fatalf("search filter returned wrong tasks: %+v", tasks)
	}
}
