package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskPriority represents the importance of a task.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// TaskStatus represents the completion state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusCompleted TaskStatus = "Completed"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID     = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle  = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong = errors.New(
		"task title must be at most 255 characters long",
	)
	ErrEmptyTaskDueDate = errors.New("task due date cannot be empty")
)

// MaxTaskTitleLength mirrors the database column constraint on tasks.title.
const MaxTaskTitleLength = 255

// Task represents a single to-do item owned by a user.
//
// Invariant: CompletedAt is non-nil if and only if Status is Completed. Every
// write path (creation, ApplyUpdate, MarkComplete, MarkIncomplete) maintains
// this automatically.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"due_date"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CompletedAt *time.Time   `json:"completed_at"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. Status defaults to
// Pending when empty. The due date must be strictly in the future at the time
// of creation. If the task is created directly in the Completed status, the
// completion timestamp is stamped immediately so the invariant holds from the
// first write.
// Returns an error if validation fails.
func NewTask(
	userID uuid.UUID,
	title, description string,
	dueDate time.Time,
	priority TaskPriority,
	status TaskStatus,
) (*Task, error) {
	now := time.Now().UTC()

	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if !dueDate.After(now) {
		return nil, NewValidationError(
			"due_date",
			"due date must be in the future",
			ErrDueDateNotFuture,
		)
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if task.Status == TaskStatusCompleted {
		completedAt := now
		task.CompletedAt = &completedAt
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return NewValidationError("title", "title is required", ErrEmptyTaskTitle)
	}
	if len(t.Title) > MaxTaskTitleLength {
		return NewValidationError("title", "title is too long", ErrTaskTitleTooLong)
	}

	if t.DueDate.IsZero() {
		return NewValidationError("due_date", "due date is required", ErrEmptyTaskDueDate)
	}

	if !IsValidTaskPriority(t.Priority) {
		return NewValidationError("priority", "must be one of Low, Medium, High", ErrInvalidPriority)
	}

	if !IsValidTaskStatus(t.Status) {
		return NewValidationError("status", "must be one of Pending, Completed", ErrInvalidStatus)
	}

	return nil
}

// IsValidTaskPriority checks if the given priority is a valid TaskPriority.
func IsValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// TaskUpdate describes a proposed set of field changes to a task. A nil field
// is absent from the change set; a non-nil field is part of it. This makes
// partial (PATCH) and full (PUT) updates flow through the same code path.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *TaskPriority
	Status      *TaskStatus

	// CompletedAt may appear in a client change set but its value is never
	// applied directly; the completion timestamp is managed by the lifecycle
	// rules below.
	CompletedAt *time.Time
}

// touchesLockedFields reports whether the change set contains any key other
// than status/completed_at.
func (u TaskUpdate) touchesLockedFields() bool {
	return u.Title != nil || u.Description != nil || u.DueDate != nil || u.Priority != nil
}

// ApplyUpdate validates the proposed change set against the task's current
// state and, if every rule passes, applies it. No field is modified when an
// error is returned.
//
// Rules, in order:
//  1. A due date being set must be strictly later than now.
//  2. A completed task rejects any change to fields other than
//     status/completed_at unless the same write reverts status to Pending.
//     An empty or status/completed_at-only change set is always permitted,
//     even when it does not revert the task. That matches the original rule
//     to the letter; see the repository design notes before tightening it.
//  3. Completion timestamp automation: a transition into Completed stamps
//     CompletedAt, a write setting status to Pending clears it, and any other
//     write leaves it untouched.
func (t *Task) ApplyUpdate(update TaskUpdate, now time.Time) error {
	if update.DueDate != nil && !update.DueDate.After(now) {
		return NewValidationError(
			"due_date",
			"due date must be in the future",
			ErrDueDateNotFuture,
		)
	}

	if update.Title != nil {
		if *update.Title == "" {
			return NewValidationError("title", "title is required", ErrEmptyTaskTitle)
		}
		if len(*update.Title) > MaxTaskTitleLength {
			return NewValidationError("title", "title is too long", ErrTaskTitleTooLong)
		}
	}

	if update.Priority != nil && !IsValidTaskPriority(*update.Priority) {
		return NewValidationError("priority", "must be one of Low, Medium, High", ErrInvalidPriority)
	}

	if update.Status != nil && !IsValidTaskStatus(*update.Status) {
		return NewValidationError("status", "must be one of Pending, Completed", ErrInvalidStatus)
	}

	revertsToPending := update.Status != nil && *update.Status == TaskStatusPending
	if t.Status == TaskStatusCompleted && !revertsToPending && update.touchesLockedFields() {
		return NewValidationError(
			"status",
			"cannot edit completed task",
			ErrCompletedTaskLocked,
		)
	}

	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.DueDate != nil {
		t.DueDate = *update.DueDate
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}

	previousStatus := t.Status
	if update.Status != nil {
		t.Status = *update.Status
	}

	switch {
	case update.Status != nil && *update.Status == TaskStatusCompleted &&
		previousStatus != TaskStatusCompleted:
		completedAt := now
		t.CompletedAt = &completedAt
	case update.Status != nil && *update.Status == TaskStatusPending:
		t.CompletedAt = nil
	}

	t.UpdatedAt = now
	return nil
}

// MarkComplete transitions the task to Completed and stamps the completion
// time. It bypasses the completed-task edit lock and is idempotent apart from
// refreshing CompletedAt.
func (t *Task) MarkComplete(now time.Time) {
	t.Status = TaskStatusCompleted
	completedAt := now
	t.CompletedAt = &completedAt
	t.UpdatedAt = now
}

// MarkIncomplete transitions the task back to Pending and clears the
// completion time. Idempotent.
func (t *Task) MarkIncomplete(now time.Time) {
	t.Status = TaskStatusPending
	t.CompletedAt = nil
	t.UpdatedAt = now
}
