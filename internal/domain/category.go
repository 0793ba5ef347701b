package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Category
var (
	ErrEmptyCategoryID     = errors.New("category ID cannot be empty")
	ErrEmptyCategoryUserID = errors.New("category user ID cannot be empty")
	ErrEmptyCategoryName   = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong = errors.New(
		"category name must be at most 100 characters long",
	)
)

// MaxCategoryNameLength mirrors the database column constraint on categories.name.
const MaxCategoryNameLength = 100

// Category represents a user-defined grouping label for tasks.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a new Category owned by the given user.
// Returns an error if validation fails.
func NewCategory(userID uuid.UUID, name string) (*Category, error) {
	now := time.Now().UTC()

	category := &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
// Returns an error if any field fails validation.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyCategoryUserID
	}

	if c.Name == "" {
		return NewValidationError("name", "name is required", ErrEmptyCategoryName)
	}
	if len(c.Name) > MaxCategoryNameLength {
		return NewValidationError("name", "name is too long", ErrCategoryNameTooLong)
	}

	return nil
}

// Rename changes the category name and refreshes the update timestamp.
// Returns an error if the new name fails validation.
func (c *Category) Rename(name string, now time.Time) error {
	if name == "" {
		return NewValidationError("name", "name is required", ErrEmptyCategoryName)
	}
	if len(name) > MaxCategoryNameLength {
		return NewValidationError("name", "name is too long", ErrCategoryNameTooLong)
	}

	c.Name = name
	c.UpdatedAt = now
	return nil
}
