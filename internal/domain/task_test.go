package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func futureDate() time.Time {
	return time.Now().UTC().Add(24 * time.Hour)
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	dueDate := futureDate()

	task, err := NewTask(userID, "Write report", "quarterly numbers", dueDate, TaskPriorityHigh, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, task.UserID)
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected default status %s, got %s", TaskStatusPending, task.Status)
	}

	if task.CompletedAt != nil {
		t.Error("Expected nil CompletedAt for a pending task")
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Empty userID
	_, err = NewTask(uuid.Nil, "Write report", "", dueDate, TaskPriorityLow, "")
	if !errors.Is(err, ErrEmptyTaskUserID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskUserID, err)
	}

	// Empty title
	_, err = NewTask(userID, "", "", dueDate, TaskPriorityLow, "")
	if !errors.Is(err, ErrEmptyTaskTitle) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	// Title over the column limit
	_, err = NewTask(userID, strings.Repeat("x", MaxTaskTitleLength+1), "", dueDate, TaskPriorityLow, "")
	if !errors.Is(err, ErrTaskTitleTooLong) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooLong, err)
	}

	// Invalid priority
	_, err = NewTask(userID, "Write report", "", dueDate, "Urgent", "")
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected error %v, got %v", ErrInvalidPriority, err)
	}

	// Invalid status
	_, err = NewTask(userID, "Write report", "", dueDate, TaskPriorityLow, "Done")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}

	// Past due date
	_, err = NewTask(userID, "Write report", "", time.Now().UTC().Add(-time.Hour), TaskPriorityLow, "")
	if !errors.Is(err, ErrDueDateNotFuture) {
		t.Errorf("Expected error %v, got %v", ErrDueDateNotFuture, err)
	}
}

func TestNewTaskCompletedStatus(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Done already", "", futureDate(), TaskPriorityLow, TaskStatusCompleted)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Status != TaskStatusCompleted {
		t.Errorf("Expected status %s, got %s", TaskStatusCompleted, task.Status)
	}

	if task.CompletedAt == nil {
		t.Fatal("Expected CompletedAt stamped for a task created as Completed")
	}
}

func TestApplyUpdateFields(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Original", "old", futureDate(), TaskPriorityLow, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	now := time.Now().UTC()
	newTitle := "Updated"
	newDescription := "new"
	newDueDate := now.Add(48 * time.Hour)
	newPriority := TaskPriorityHigh

	update := TaskUpdate{
		Title:       &newTitle,
		Description: &newDescription,
		DueDate:     &newDueDate,
		Priority:    &newPriority,
	}

	if err := task.ApplyUpdate(update, now); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Title != newTitle {
		t.Errorf("Expected title %q, got %q", newTitle, task.Title)
	}

	if task.Description != newDescription {
		t.Errorf("Expected description %q, got %q", newDescription, task.Description)
	}

	if !task.DueDate.Equal(newDueDate) {
		t.Errorf("Expected due date %v, got %v", newDueDate, task.DueDate)
	}

	if task.Priority != newPriority {
		t.Errorf("Expected priority %s, got %s", newPriority, task.Priority)
	}

	if !task.UpdatedAt.Equal(now) {
		t.Errorf("Expected UpdatedAt %v, got %v", now, task.UpdatedAt)
	}
}

func TestApplyUpdateRejectsPastDueDate(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Task", "", futureDate(), TaskPriorityLow, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	now := time.Now().UTC()
	pastDate := now.Add(-time.Hour)
	originalDueDate := task.DueDate

	err = task.ApplyUpdate(TaskUpdate{DueDate: &pastDate}, now)
	if !errors.Is(err, ErrDueDateNotFuture) {
		t.Fatalf("Expected error %v, got %v", ErrDueDateNotFuture, err)
	}

	// Failed updates must not partially apply.
	if !task.DueDate.Equal(originalDueDate) {
		t.Errorf("Expected due date unchanged at %v, got %v", originalDueDate, task.DueDate)
	}
}

func TestApplyUpdateCompletionAutomation(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Task", "", futureDate(), TaskPriorityLow, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	now := time.Now().UTC()
	completed := TaskStatusCompleted
	pending := TaskStatusPending

	// Transition into Completed stamps the timestamp.
	if err := task.ApplyUpdate(TaskUpdate{Status: &completed}, now); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("Expected CompletedAt set after transition to Completed")
	}
	if !task.CompletedAt.Equal(now) {
		t.Errorf("Expected CompletedAt %v, got %v", now, *task.CompletedAt)
	}

	// A Completed -> Completed write leaves the original timestamp alone.
	later := now.Add(time.Minute)
	if err := task.ApplyUpdate(TaskUpdate{Status: &completed}, later); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !task.CompletedAt.Equal(now) {
		t.Errorf("Expected CompletedAt unchanged at %v, got %v", now, *task.CompletedAt)
	}

	// Reverting to Pending clears the timestamp.
	if err := task.ApplyUpdate(TaskUpdate{Status: &pending}, later); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.CompletedAt != nil {
		t.Errorf("Expected nil CompletedAt after revert, got %v", *task.CompletedAt)
	}
}

func TestApplyUpdateClientCompletedAtIgnored(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Task", "", futureDate(), TaskPriorityLow, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	now := time.Now().UTC()
	completed := TaskStatusCompleted
	clientTime := now.Add(-72 * time.Hour)

	err = task.ApplyUpdate(TaskUpdate{Status: &completed, CompletedAt: &clientTime}, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The lifecycle rules own the timestamp, not the client.
	if !task.CompletedAt.Equal(now) {
		t.Errorf("Expected CompletedAt %v, got %v", now, *task.CompletedAt)
	}
}

func TestApplyUpdateCompletedTaskLock(t *testing.T) {
	t.Parallel()

	newCompletedTask := func(t *testing.T) *Task {
		t.Helper()
		task, err := NewTask(uuid.New(), "Task", "", futureDate(), TaskPriorityLow, TaskStatusCompleted)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return task
	}

	now := time.Now().UTC()
	newTitle := "Changed"
	pending := TaskStatusPending
	completed := TaskStatusCompleted

	// Editing a locked field on a completed task is rejected.
	task := newCompletedTask(t)
	err := task.ApplyUpdate(TaskUpdate{Title: &newTitle}, now)
	if !errors.Is(err, ErrCompletedTaskLocked) {
		t.Fatalf("Expected error %v, got %v", ErrCompletedTaskLocked, err)
	}
	if task.Title != "Task" {
		t.Errorf("Expected title unchanged, got %q", task.Title)
	}

	// Reverting to Pending in the same write unlocks the other fields.
	task = newCompletedTask(t)
	err = task.ApplyUpdate(TaskUpdate{Title: &newTitle, Status: &pending}, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Title != newTitle {
		t.Errorf("Expected title %q, got %q", newTitle, task.Title)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}
	if task.CompletedAt != nil {
		t.Error("Expected nil CompletedAt after revert")
	}

	// A status-only write restating Completed passes the guard.
	task = newCompletedTask(t)
	if err := task.ApplyUpdate(TaskUpdate{Status: &completed}, now); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// An empty change set passes the guard too.
	task = newCompletedTask(t)
	if err := task.ApplyUpdate(TaskUpdate{}, now); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Setting status to Completed alongside locked fields is still rejected.
	task = newCompletedTask(t)
	err = task.ApplyUpdate(TaskUpdate{Title: &newTitle, Status: &completed}, now)
	if !errors.Is(err, ErrCompletedTaskLocked) {
		t.Fatalf("Expected error %v, got %v", ErrCompletedTaskLocked, err)
	}
}

func TestMarkCompleteAndIncomplete(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Task", "", futureDate(), TaskPriorityLow, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	now := time.Now().UTC()
	task.MarkComplete(now)

	if task.Status != TaskStatusCompleted {
		t.Errorf("Expected status %s, got %s", TaskStatusCompleted, task.Status)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("Expected CompletedAt %v, got %v", now, task.CompletedAt)
	}

	// Idempotent on an already-completed task, refreshing the timestamp.
	later := now.Add(time.Minute)
	task.MarkComplete(later)
	if task.Status != TaskStatusCompleted {
		t.Errorf("Expected status %s, got %s", TaskStatusCompleted, task.Status)
	}
	if !task.CompletedAt.Equal(later) {
		t.Errorf("Expected CompletedAt %v, got %v", later, *task.CompletedAt)
	}

	task.MarkIncomplete(later)
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}
	if task.CompletedAt != nil {
		t.Errorf("Expected nil CompletedAt, got %v", *task.CompletedAt)
	}

	// Idempotent on an already-pending task.
	task.MarkIncomplete(later)
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}
}

func TestIsValidTaskPriority(t *testing.T) {
	t.Parallel()

	valid := []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
	for _, p := range valid {
		if !IsValidTaskPriority(p) {
			t.Errorf("Expected priority %s to be valid", p)
		}
	}

	invalid := []TaskPriority{"", "low", "Urgent", "HIGH"}
	for _, p := range invalid {
		if IsValidTaskPriority(p) {
			t.Errorf("Expected priority %q to be invalid", p)
		}
	}
}

func TestIsValidTaskStatus(t *testing.T) {
	t.Parallel()

	if !IsValidTaskStatus(TaskStatusPending) || !IsValidTaskStatus(TaskStatusCompleted) {
		t.Error("Expected Pending and Completed to be valid statuses")
	}

	invalid := []TaskStatus{"", "pending", "Done", "COMPLETED"}
	for _, s := range invalid {
		if IsValidTaskStatus(s) {
			t.Errorf("Expected status %q to be invalid", s)
		}
	}
}
