package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Direction string `json:"direction"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
}

// CategoryResponse represents a custom category in API responses
type CategoryResponse struct {
	ID        string `json:"id"`
	Direction string `json:"direction"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	CreatedAt string `json:"createdAt"`
}

// CategoryDescriptorResponse represents a resolved category in API responses
type CategoryDescriptorResponse struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"isCustom"`
}

// GetCategories handles GET /api/v1/categories.
// With a direction query parameter it returns the merged built-in plus
// custom list for that direction; without one it returns custom
// categories only.
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	directionStr := c.QueryParam("direction")
	if directionStr == "" {
		customs, err := h.categoryService.GetCustomCategories()
		if err != nil {
			log.Error().Err(err).Msg("Failed to list categories")
			return NewInternalError(c, "Failed to list categories")
		}
		resp := make([]CategoryResponse, 0, len(customs))
		for _, cat := range customs {
			resp = append(resp, toCategoryResponse(cat))
		}
		return c.JSON(http.StatusOK, resp)
	}

	direction := domain.Direction(directionStr)
	merged, err := h.categoryService.GetMergedList(direction)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDirection) {
			return NewValidationError(c, "Invalid direction (must be 'IN' or 'OUT')", nil)
		}
		log.Error().Err(err).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}

	resp := make([]CategoryDescriptorResponse, 0, len(merged))
	for _, d := range merged {
		resp = append(resp, CategoryDescriptorResponse{
			ID:       d.ID,
			Label:    d.Label,
			Icon:     d.Icon,
			IsCustom: d.IsCustom,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetIcons handles GET /api/v1/categories/icons
func (h *CategoryHandler) GetIcons(c echo.Context) error {
	return c.JSON(http.StatusOK, service.Icons())
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCustomCategory(domain.Direction(req.Direction), req.Label, req.Icon)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDirection) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "direction", Message: "Direction must be one of: IN, OUT"},
			})
		}
		if errors.Is(err, domain.ErrLabelRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "label", Message: "Label is required"},
			})
		}
		if errors.Is(err, domain.ErrLabelTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "label", Message: "Label must be 40 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrUnknownIcon) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "icon", Message: "Icon is not in the catalog"},
			})
		}
		log.Error().Err(err).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("category_id", category.ID).Str("label", category.Label).Msg("Category created")

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id := c.Param("id")

	if err := h.categoryService.DeleteCustomCategory(id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("category_id", id).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().Str("category_id", id).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(category *domain.CustomCategory) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Direction: string(category.Direction),
		Label:     category.Label,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
	}
}
