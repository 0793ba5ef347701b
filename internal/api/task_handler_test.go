package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/store"
)

// newTaskRouter wires a TaskHandler into a chi router so path parameters
// resolve the same way they do in production.
func newTaskRouter(taskStore store.TaskStore) chi.Router {
	handler := NewTaskHandler(taskStore, nil)

	r := chi.NewRouter()
	r.Get("/api/tasks", handler.ListTasks)
	r.Post("/api/tasks", handler.CreateTask)
	r.Get("/api/tasks/{id}", handler.GetTask)
	r.Put("/api/tasks/{id}", handler.ReplaceTask)
	r.Patch("/api/tasks/{id}", handler.PatchTask)
	r.Delete("/api/tasks/{id}", handler.DeleteTask)
	r.Post("/api/tasks/{id}/mark_complete", handler.MarkComplete)
	r.Post("/api/tasks/{id}/mark_incomplete", handler.MarkIncomplete)
	return r
}

// doAuthedRequest executes a request with the given user injected into the
// context, the way the auth middleware would.
func doAuthedRequest(
	t *testing.T,
	router http.Handler,
	userID uuid.UUID,
	method, target string,
	payload interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func mustNewTask(t *testing.T, userID uuid.UUID, title string, status domain.TaskStatus) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(
		userID,
		title,
		"",
		time.Now().UTC().Add(24*time.Hour),
		domain.TaskPriorityMedium,
		status,
	)
	require.NoError(t, err)
	return task
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	futureDate := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	pastDate := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid task",
			payload: map[string]interface{}{
				"title":    "Write report",
				"due_date": futureDate,
				"priority": "High",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "created directly as completed",
			payload: map[string]interface{}{
				"title":    "Already done",
				"due_date": futureDate,
				"priority": "Low",
				"status":   "Completed",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "due date in the past",
			payload: map[string]interface{}{
				"title":    "Too late",
				"due_date": pastDate,
				"priority": "Low",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing title",
			payload: map[string]interface{}{
				"due_date": futureDate,
				"priority": "Low",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid priority",
			payload: map[string]interface{}{
				"title":    "Task",
				"due_date": futureDate,
				"priority": "Urgent",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid status",
			payload: map[string]interface{}{
				"title":    "Task",
				"due_date": futureDate,
				"priority": "Low",
				"status":   "Done",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			taskStore := mocks.NewMockTaskStore()
			router := newTaskRouter(taskStore)

			recorder := doAuthedRequest(t, router, userID, http.MethodPost, "/api/tasks", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp TaskResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.NotEqual(t, uuid.Nil, resp.ID)
				assert.Equal(t, userID, resp.UserID)

				if resp.Status == string(domain.TaskStatusCompleted) {
					assert.NotNil(t, resp.CompletedAt,
						"a task created as Completed must carry a completion time")
				} else {
					assert.Equal(t, string(domain.TaskStatusPending), resp.Status)
					assert.Nil(t, resp.CompletedAt)
				}
			}
		})
	}
}

func TestGetTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	task := mustNewTask(t, userID, "Mine", "")
	taskStore.Tasks[task.ID] = task
	router := newTaskRouter(taskStore)

	recorder := doAuthedRequest(t, router, userID, http.MethodGet,
		fmt.Sprintf("/api/tasks/%s", task.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, task.ID, resp.ID)
	assert.Equal(t, "Mine", resp.Title)

	// Unknown ID is a 404.
	recorder = doAuthedRequest(t, router, userID, http.MethodGet,
		fmt.Sprintf("/api/tasks/%s", uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// Malformed ID is a 400.
	recorder = doAuthedRequest(t, router, userID, http.MethodGet, "/api/tasks/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTaskOwnershipScoping(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()

	taskStore := mocks.NewMockTaskStore()
	task := mustNewTask(t, owner, "Private", "")
	taskStore.Tasks[task.ID] = task
	router := newTaskRouter(taskStore)

	target := fmt.Sprintf("/api/tasks/%s", task.ID)
	update := map[string]interface{}{
		"title":    "Hijacked",
		"due_date": time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
		"priority": "Low",
	}

	// Another user's task must look exactly like a missing task, never a 403.
	tests := []struct {
		method  string
		target  string
		payload interface{}
	}{
		{http.MethodGet, target, nil},
		{http.MethodPut, target, update},
		{http.MethodPatch, target, map[string]interface{}{"title": "Hijacked"}},
		{http.MethodDelete, target, nil},
		{http.MethodPost, target + "/mark_complete", nil},
		{http.MethodPost, target + "/mark_incomplete", nil},
	}

	for _, tt := range tests {
		recorder := doAuthedRequest(t, router, stranger, tt.method, tt.target, tt.payload)
		assert.Equal(t, http.StatusNotFound, recorder.Code,
			"%s %s should 404 for a non-owner", tt.method, tt.target)
	}

	// The owner still sees the task untouched.
	recorder := doAuthedRequest(t, router, owner, http.MethodGet, target, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestListTasksFilterParsing(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("filters forwarded to store", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(taskStore)

		recorder := doAuthedRequest(t, router, userID, http.MethodGet,
			"/api/tasks?status=Pending&priority=High&search=report&ordering=-due_date", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		filter := taskStore.LastFilter
		require.NotNil(t, filter.Status)
		assert.Equal(t, domain.TaskStatusPending, *filter.Status)
		require.NotNil(t, filter.Priority)
		assert.Equal(t, domain.TaskPriorityHigh, *filter.Priority)
		assert.Equal(t, "report", filter.Search)
		assert.Equal(t, store.TaskOrderingDueDateDesc, filter.Ordering)
	})

	t.Run("date range filters", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(taskStore)

		recorder := doAuthedRequest(t, router, userID, http.MethodGet,
			"/api/tasks?due_date_after=2026-01-01&due_date_before=2026-06-30T23:59:59Z", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		filter := taskStore.LastFilter
		require.NotNil(t, filter.DueDateAfter)
		assert.Equal(t, 2026, filter.DueDateAfter.Year())
		require.NotNil(t, filter.DueDateBefore)
		assert.Equal(t, time.Month(6), filter.DueDateBefore.Month())
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(taskStore)

		for _, query := range []string{
			"status=Done",
			"priority=Urgent",
			"due_date=yesterday",
			"ordering=title",
		} {
			recorder := doAuthedRequest(t, router, userID, http.MethodGet, "/api/tasks?"+query, nil)
			assert.Equal(t, http.StatusBadRequest, recorder.Code, "query %q should be rejected", query)
		}
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(taskStore)

		recorder := doAuthedRequest(t, router, userID, http.MethodGet, "/api/tasks", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, "[]", recorder.Body.String())
	})
}

func TestPatchTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("partial update", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := mustNewTask(t, userID, "Original", "")
		taskStore.Tasks[task.ID] = task
		router := newTaskRouter(taskStore)

		recorder := doAuthedRequest(t, router, userID, http.MethodPatch,
			fmt.Sprintf("/api/tasks/%s", task.ID),
			map[string]interface{}{"title": "Renamed"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "Renamed", resp.Title)
		assert.Equal(t, string(domain.TaskPriorityMedium), resp.Priority, "untouched fields survive")
	})

	t.Run("completing via status change stamps completed_at", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := mustNewTask(t, userID, "Task", "")
		taskStore.Tasks[task.ID] = task
		router := newTaskRouter(taskStore)

		recorder := doAuthedRequest(t, router, userID, http.MethodPatch,
			fmt.Sprintf("/api/tasks/%s", task.ID),
			map[string]interface{}{"status": "Completed"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, string(domain.TaskStatusCompleted), resp.Status)
		assert.NotNil(t, resp.CompletedAt)
	})

	t.Run("client completed_at is ignored", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := mustNewTask(t, userID, "Task", "")
		taskStore.Tasks[task.ID] = task
		router := newTaskRouter(taskStore)

		clientTime := time.Now().UTC().Add(-72 * time.Hour)
		recorder := doAuthedRequest(t, router, userID, http.MethodPatch,
			fmt.Sprintf("/api/tasks/%s", task.ID),
			map[string]interface{}{
				"status":       "Completed",
				"completed_at": clientTime.Format(time.RFC3339),
			})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		require.NotNil(t, resp.CompletedAt)
		assert.True(t, resp.CompletedAt.After(clientTime.Add(time.Hour)),
			"server time wins over the client-provided completed_at")
	})

	t.Run("completed task rejects edits", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := mustNewTask(t, userID, "Done", domain.TaskStatusCompleted)
		taskStore.Tasks[task.ID] = task
		router := newTaskRouter(taskStore)

		recorder := doAuthedRequest(t, router, userID, http.MethodPatch,
			fmt.Sprintf("/api/tasks/%s", task.ID),
			map[string]interface{}{"title": "Changed"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("revert to pending unlocks edits", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := mustNewTask(t, userID, "Done", domain.TaskStatusCompleted)
		taskStore.Tasks[task.ID] = task
		router := newTaskRouter(taskStore)

		recorder := doAuthedRequest(t, router, userID, http.MethodPatch,
			fmt.Sprintf("/api/tasks/%s", task.ID),
			map[string]interface{}{"title": "Reopened", "status": "Pending"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "Reopened", resp.Title)
		assert.Equal(t, string(domain.TaskStatusPending), resp.Status)
		assert.Nil(t, resp.CompletedAt)
	})
}

func TestReplaceTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	task := mustNewTask(t, userID, "Original", "")
	taskStore.Tasks[task.ID] = task
	router := newTaskRouter(taskStore)

	newDueDate := time.Now().UTC().Add(48 * time.Hour)
	recorder := doAuthedRequest(t, router, userID, http.MethodPut,
		fmt.Sprintf("/api/tasks/%s", task.ID),
		map[string]interface{}{
			"title":       "Replaced",
			"description": "full rewrite",
			"due_date":    newDueDate.Format(time.RFC3339),
			"priority":    "High",
		})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Replaced", resp.Title)
	assert.Equal(t, "full rewrite", resp.Description)
	assert.Equal(t, string(domain.TaskPriorityHigh), resp.Priority)

	// A PUT without the required fields is rejected.
	recorder = doAuthedRequest(t, router, userID, http.MethodPut,
		fmt.Sprintf("/api/tasks/%s", task.ID),
		map[string]interface{}{"title": "Only title"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	task := mustNewTask(t, userID, "Doomed", "")
	taskStore.Tasks[task.ID] = task
	router := newTaskRouter(taskStore)

	target := fmt.Sprintf("/api/tasks/%s", task.ID)

	recorder := doAuthedRequest(t, router, userID, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, taskStore.Tasks)

	// Deleting again is a 404.
	recorder = doAuthedRequest(t, router, userID, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMarkCompleteEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	task := mustNewTask(t, userID, "Task", "")
	taskStore.Tasks[task.ID] = task
	router := newTaskRouter(taskStore)

	target := fmt.Sprintf("/api/tasks/%s/mark_complete", task.ID)

	recorder := doAuthedRequest(t, router, userID, http.MethodPost, target, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp StatusResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "task marked as completed", resp.Status)
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	assert.NotNil(t, task.CompletedAt)

	// Idempotent on an already-completed task.
	recorder = doAuthedRequest(t, router, userID, http.MethodPost, target, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestMarkIncompleteEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	task := mustNewTask(t, userID, "Task", domain.TaskStatusCompleted)
	taskStore.Tasks[task.ID] = task
	router := newTaskRouter(taskStore)

	recorder := doAuthedRequest(t, router, userID, http.MethodPost,
		fmt.Sprintf("/api/tasks/%s/mark_incomplete", task.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp StatusResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "task marked as incomplete", resp.Status)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestTasksRequireAuthentication(t *testing.T) {
	t.Parallel()

	router := newTaskRouter(mocks.NewMockTaskStore())

	// No user ID in context.
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
