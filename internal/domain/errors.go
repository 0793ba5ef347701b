package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidPriority is returned when a task priority is not one of
	// Low, Medium, or High.
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrInvalidStatus is returned when a task status is not Pending or Completed.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrDueDateNotFuture is returned when a write sets a due date that is
	// not strictly later than the current time.
	ErrDueDateNotFuture = errors.New("due date must be in the future")

	// ErrCompletedTaskLocked is returned when a write attempts to modify a
	// completed task without reverting it to Pending.
	ErrCompletedTaskLocked = errors.New("cannot edit completed task")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
