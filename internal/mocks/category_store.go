package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, category *domain.Category) error
	GetForUserFn  func(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)
	ListForUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	UpdateFn      func(ctx context.Context, category *domain.Category) error
	DeleteFn      func(ctx context.Context, userID, categoryID uuid.UUID) error

	// Data for default implementation
	Categories  map[uuid.UUID]*domain.Category
	CreateError error
}

// NewMockCategoryStore creates a new mock store with initialized defaults
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// Create implements the store.CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Categories[category.ID] = category
	return nil
}

// GetForUser implements the store.CategoryStore interface
func (m *MockCategoryStore) GetForUser(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) (*domain.Category, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, userID, categoryID)
	}

	category, ok := m.Categories[categoryID]
	if !ok || category.UserID != userID {
		return nil, store.ErrCategoryNotFound
	}
	return category, nil
}

// ListForUser implements the store.CategoryStore interface
func (m *MockCategoryStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Category, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}

	categories := make([]*domain.Category, 0)
	for _, category := range m.Categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

// Update implements the store.CategoryStore interface
func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, category)
	}

	existing, ok := m.Categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return store.ErrCategoryNotFound
	}
	m.Categories[category.ID] = category
	return nil
}

// Delete implements the store.CategoryStore interface
func (m *MockCategoryStore) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, categoryID)
	}

	category, ok := m.Categories[categoryID]
	if !ok || category.UserID != userID {
		return store.ErrCategoryNotFound
	}
	delete(m.Categories, categoryID)
	return nil
}

// WithTx implements the store.CategoryStore interface. The mock does not use
// transactions, so it returns itself.
func (m *MockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return m
}
