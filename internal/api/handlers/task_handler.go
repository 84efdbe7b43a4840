package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/taskdeck-be/internal/auth"
	"github.com/isdelr/taskdeck-be/internal/models"
	"github.com/isdelr/taskdeck-be/internal/services"
	"github.com/rs/zerolog/log"
)

// TaskHandler handles HTTP requests for task management. Every route it
// serves sits behind the auth middleware, so the owner is always the
// authenticated user from the request context.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// createTaskPayload defines the structure for task creation requests.
type createTaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (p createTaskPayload) validate() error {
	if p.Title == "" {
		return fmt.Errorf("title must not be empty")
	}
	if p.Description == "" {
		return fmt.Errorf("description must not be empty")
	}
	return nil
}

// updateTaskStatusPayload defines the structure for status update requests.
type updateTaskStatusPayload struct {
	Status string `json:"status"`
}

// parseTaskFilter builds a TaskFilter from the request query parameters.
func parseTaskFilter(r *http.Request) (models.TaskFilter, error) {
	var filter models.TaskFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			return models.TaskFilter{}, err
		}
		filter.Status = &status
	}
	filter.Search = r.URL.Query().Get("search")

	return filter, nil
}

func ownerFromContext(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve authenticated user from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
	}
	return user, ok
}

// List handles retrieving the caller's tasks, optionally filtered by status
// and a case-insensitive search over title and description.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tasks, err := h.service.List(r.Context(), user.ID, filter)
	if err != nil {
		log.Error().Err(err).Str("owner_id", user.ID).Msg("Failed to list tasks")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// Create handles creating a new task owned by the caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var payload createTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := payload.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	task, err := h.service.Create(r.Context(), payload.Title, payload.Description, user.ID)
	if err != nil {
		log.Error().Err(err).Str("owner_id", user.ID).Msg("Failed to create task")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

// Get handles retrieving a single task by its ID.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	taskID := chi.URLParam(r, "taskID")
	task, err := h.service.GetOwned(r.Context(), taskID, user.ID)
	if err != nil {
		h.respondTaskError(w, err, taskID, user.ID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// UpdateStatus handles moving a task to a new status.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var payload updateTaskStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	status, err := models.ParseTaskStatus(payload.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	taskID := chi.URLParam(r, "taskID")
	task, err := h.service.UpdateStatus(r.Context(), taskID, status, user.ID)
	if err != nil {
		h.respondTaskError(w, err, taskID, user.ID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// Delete handles the permanent deletion of a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	taskID := chi.URLParam(r, "taskID")
	if err := h.service.Delete(r.Context(), taskID, user.ID); err != nil {
		h.respondTaskError(w, err, taskID, user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) respondTaskError(w http.ResponseWriter, err error, taskID, ownerID string) {
	if errors.Is(err, services.ErrTaskNotFound) {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	log.Error().Err(err).Str("task_id", taskID).Str("owner_id", ownerID).Msg("Task operation failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
