package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// RegisterResponse defines the successful response for registration:
// the created user plus an issued token pair.
type RegisterResponse struct {
	User    UserResponse `json:"user"`
	Refresh string       `json:"refresh"`
	Access  string       `json:"access"`
}

// TokenPairResponse defines the successful response for login.
type TokenPairResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh
// endpoint: a new access token.
type RefreshTokenResponse struct {
	Access string `json:"access"`
}

// CreateTaskRequest defines the payload for creating a task. Status is
// optional and defaults to Pending.
type CreateTaskRequest struct {
	Title       string    `json:"title"       validate:"required,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	Priority    string    `json:"priority"    validate:"required,oneof=Low Medium High"`
	Status      string    `json:"status"      validate:"omitempty,oneof=Pending Completed"`
}

// ReplaceTaskRequest defines the payload for a full (PUT) task update.
// Every mutable field must be supplied.
type ReplaceTaskRequest struct {
	Title       string    `json:"title"       validate:"required,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	Priority    string    `json:"priority"    validate:"required,oneof=Low Medium High"`
	Status      string    `json:"status"      validate:"omitempty,oneof=Pending Completed"`
}

// PatchTaskRequest defines the payload for a partial (PATCH) task update.
// Absent fields are left untouched.
type PatchTaskRequest struct {
	Title       *string    `json:"title"        validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"     validate:"omitempty,oneof=Low Medium High"`
	Status      *string    `json:"status"       validate:"omitempty,oneof=Pending Completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// CategoryRequest defines the payload for creating or updating a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse represents the response data for a category.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// categoryToResponse converts a domain.Category to a CategoryResponse.
func categoryToResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// StatusResponse is the body returned by the task state-transition endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}
