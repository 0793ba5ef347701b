package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
// Like TaskStore, every operation is scoped to the owning user.
type CategoryStore interface {
	// Create saves a new category to the store.
	// Returns validation errors from the domain Category if data is invalid.
	Create(ctx context.Context, category *domain.Category) error

	// GetForUser retrieves a category by ID, scoped to the owning user.
	// Returns ErrCategoryNotFound if the category does not exist or belongs
	// to a different user.
	GetForUser(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)

	// ListForUser retrieves all categories owned by the user, ordered by name.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// Update persists the current state of a category, scoped to the owning user.
	// Returns ErrCategoryNotFound if the category does not exist or belongs
	// to a different user.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category, scoped to the owning user.
	// Returns ErrCategoryNotFound if the category does not exist or belongs
	// to a different user.
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error

	// WithTx returns a new CategoryStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CategoryStore
}
