package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/store"
)

// CategoryHandler handles category-related API requests, scoped to the
// authenticated user in the same way as TaskHandler.
type CategoryHandler struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
	timeFunc      func() time.Time
}

// NewCategoryHandler creates a new CategoryHandler with the given dependencies.
func NewCategoryHandler(categoryStore store.CategoryStore, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryHandler{
		categoryStore: categoryStore,
		logger:        logger.With(slog.String("component", "category_handler")),
		timeFunc:      func() time.Time { return time.Now().UTC() },
	}
}

// ListCategories handles GET /api/categories requests.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	categories, err := h.categoryStore.ListForUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list categories", "error", err, "user_id", userID)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to list categories", err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, categoryToResponse(category))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// CreateCategory handles POST /api/categories requests.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	category, err := domain.NewCategory(userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid category data")
		return
	}

	if err := h.categoryStore.Create(r.Context(), category); err != nil {
		log.Error("failed to create category", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to create category")
		return
	}

	log.Debug("category created", "category_id", category.ID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, categoryToResponse(category))
}

// GetCategory handles GET /api/categories/{id} requests.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, categoryID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	category, err := h.categoryStore.GetForUser(r.Context(), userID, categoryID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(category))
}

// UpdateCategory handles PUT /api/categories/{id} requests.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, categoryID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	category, err := h.categoryStore.GetForUser(r.Context(), userID, categoryID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get category")
		return
	}

	if err := category.Rename(req.Name, h.timeFunc()); err != nil {
		HandleAPIError(w, r, err, "Invalid category data")
		return
	}

	if err := h.categoryStore.Update(r.Context(), category); err != nil {
		HandleAPIError(w, r, err, "Failed to update category")
		return
	}

	log.Debug("category updated", "category_id", categoryID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(category))
}

// DeleteCategory handles DELETE /api/categories/{id} requests.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, categoryID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.categoryStore.Delete(r.Context(), userID, categoryID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete category")
		return
	}

	log.Debug("category deleted", "category_id", categoryID, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}
