package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// TaskOrdering identifies a supported sort order for task listings.
type TaskOrdering string

// Supported task list orderings. The empty string falls back to creation
// order. Priority orders semantically (Low < Medium < High), not
// lexicographically.
const (
	TaskOrderingDefault      TaskOrdering = ""
	TaskOrderingDueDate      TaskOrdering = "due_date"
	TaskOrderingDueDateDesc  TaskOrdering = "-due_date"
	TaskOrderingPriority     TaskOrdering = "priority"
	TaskOrderingPriorityDesc TaskOrdering = "-priority"
)

// IsValidTaskOrdering checks if the given ordering is supported.
func IsValidTaskOrdering(ordering TaskOrdering) bool {
	switch ordering {
	case TaskOrderingDefault, TaskOrderingDueDate, TaskOrderingDueDateDesc,
		TaskOrderingPriority, TaskOrderingPriorityDesc:
		return true
	default:
		return false
	}
}

// TaskFilter narrows a task listing. Nil fields are ignored. Search matches a
// case-insensitive substring of the title or description.
type TaskFilter struct {
	Status        *domain.TaskStatus
	Priority      *domain.TaskPriority
	DueDate       *time.Time
	DueDateBefore *time.Time
	DueDateAfter  *time.Time
	Search        string
	Ordering      TaskOrdering
}

// TaskStore defines the interface for task data persistence. Every read and
// write is scoped to an owning user; a task owned by someone else behaves
// exactly like a missing one.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid, and
	// ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a task by ID, scoped to the owning user.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	GetForUser(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListForUser retrieves all tasks owned by the user, narrowed and ordered
	// by the given filter. Returns an empty slice when nothing matches.
	ListForUser(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// Update persists the current state of a task, scoped to the owning user.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task, scoped to the owning user.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
