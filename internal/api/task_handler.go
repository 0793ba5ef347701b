package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/platform/metrics"
	"github.com/phrazzld/tasker-api/internal/store"
)

// TaskHandler handles task-related API requests. Every operation is scoped to
// the authenticated user; tasks owned by someone else are indistinguishable
// from tasks that do not exist.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
	timeFunc  func() time.Time
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
		timeFunc:  func() time.Time { return time.Now().UTC() },
	}
}

// ListTasks handles GET /api/tasks requests. The query string narrows the
// result set (status, priority, due_date, due_date_before, due_date_after,
// search) and controls ordering (ordering=due_date|-due_date|priority|-priority).
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	filter, err := parseTaskFilter(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskStore.ListForUser(r.Context(), userID, filter)
	if err != nil {
		log.Error("failed to list tasks", "error", err, "user_id", userID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := domain.NewTask(
		userID,
		req.Title,
		req.Description,
		req.DueDate,
		domain.TaskPriority(req.Priority),
		domain.TaskStatus(req.Status),
	)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid task data")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		log.Error("failed to create task", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	if task.Status == domain.TaskStatusCompleted {
		metrics.TasksCompletedTotal.Inc()
	}

	log.Debug("task created", "task_id", task.ID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskStore.GetForUser(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ReplaceTask handles PUT /api/tasks/{id} requests. The full set of mutable
// fields is required and applied as one change set.
func (h *TaskHandler) ReplaceTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ReplaceTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	priority := domain.TaskPriority(req.Priority)
	update := domain.TaskUpdate{
		Title:       &req.Title,
		Description: &req.Description,
		DueDate:     &req.DueDate,
		Priority:    &priority,
	}
	if req.Status != "" {
		status := domain.TaskStatus(req.Status)
		update.Status = &status
	}

	h.applyAndRespond(w, r, log, userID, taskID, update)
}

// PatchTask handles PATCH /api/tasks/{id} requests. Only the fields present
// in the body form the change set.
func (h *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req PatchTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CompletedAt: req.CompletedAt,
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		update.Priority = &priority
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}

	h.applyAndRespond(w, r, log, userID, taskID, update)
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	log.Debug("task deleted", "task_id", taskID, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// MarkComplete handles POST /api/tasks/{id}/mark_complete requests. The
// transition bypasses the completed-task edit lock and is idempotent.
func (h *TaskHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskStore.GetForUser(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	wasCompleted := task.Status == domain.TaskStatusCompleted
	task.MarkComplete(h.timeFunc())

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	if !wasCompleted {
		metrics.TasksCompletedTotal.Inc()
	}

	log.Debug("task marked complete", "task_id", taskID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "task marked as completed"})
}

// MarkIncomplete handles POST /api/tasks/{id}/mark_incomplete requests.
func (h *TaskHandler) MarkIncomplete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskStore.GetForUser(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	task.MarkIncomplete(h.timeFunc())

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	log.Debug("task marked incomplete", "task_id", taskID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "task marked as incomplete"})
}

// applyAndRespond loads the task, applies the change set, persists it, and
// writes the updated representation. Shared by PUT and PATCH.
func (h *TaskHandler) applyAndRespond(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
	userID, taskID uuid.UUID,
	update domain.TaskUpdate,
) {
	task, err := h.taskStore.GetForUser(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	wasCompleted := task.Status == domain.TaskStatusCompleted

	if err := task.ApplyUpdate(update, h.timeFunc()); err != nil {
		HandleAPIError(w, r, err, "Invalid task data")
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	if !wasCompleted && task.Status == domain.TaskStatusCompleted {
		metrics.TasksCompletedTotal.Inc()
	}

	log.Debug("task updated", "task_id", taskID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// parseTaskFilter builds a store.TaskFilter from list query parameters.
// Unknown parameters are ignored; known parameters with invalid values
// produce a field-level validation error.
func parseTaskFilter(query url.Values) (store.TaskFilter, error) {
	var filter store.TaskFilter

	if raw := query.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !domain.IsValidTaskStatus(status) {
			return filter, domain.NewValidationError(
				"status", "must be one of Pending, Completed", domain.ErrInvalidStatus)
		}
		filter.Status = &status
	}

	if raw := query.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !domain.IsValidTaskPriority(priority) {
			return filter, domain.NewValidationError(
				"priority", "must be one of Low, Medium, High", domain.ErrInvalidPriority)
		}
		filter.Priority = &priority
	}

	dateParams := []struct {
		name string
		dest **time.Time
	}{
		{"due_date", &filter.DueDate},
		{"due_date_before", &filter.DueDateBefore},
		{"due_date_after", &filter.DueDateAfter},
	}
	for _, p := range dateParams {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := parseQueryTime(raw)
		if err != nil {
			return filter, domain.NewValidationError(
				p.name, "must be an RFC 3339 timestamp or YYYY-MM-DD date", err)
		}
		*p.dest = &t
	}

	filter.Search = query.Get("search")

	if raw := query.Get("ordering"); raw != "" {
		ordering := store.TaskOrdering(raw)
		if !store.IsValidTaskOrdering(ordering) {
			return filter, domain.NewValidationError(
				"ordering",
				"must be one of due_date, -due_date, priority, -priority",
				domain.ErrValidation,
			)
		}
		filter.Ordering = ordering
	}

	return filter, nil
}

// parseQueryTime accepts either a full RFC 3339 timestamp or a bare date.
func parseQueryTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
