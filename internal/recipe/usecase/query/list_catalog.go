package query

import (
	"fmt"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// ListTagsQuery represents the query to list all tags
type ListTagsQuery struct{}

// ListTagsHandler handles list tags queries
type ListTagsHandler struct {
	catalog domain.CatalogRepository
}

// NewListTagsHandler creates a new list tags handler
func NewListTagsHandler(catalog domain.CatalogRepository) *ListTagsHandler {
	return &ListTagsHandler{catalog: catalog}
}

// Handle executes the list tags query
func (h *ListTagsHandler) Handle(ListTagsQuery) ([]domain.Tag, error) {
	tags, err := h.catalog.ListTags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// ListIngredientsQuery represents the query to list catalog ingredients
type ListIngredientsQuery struct {
	Search string // Optional: name prefix
}

// ListIngredientsHandler handles list ingredients queries
type ListIngredientsHandler struct {
	catalog domain.CatalogRepository
}

// NewListIngredientsHandler creates a new list ingredients handler
func NewListIngredientsHandler(catalog domain.CatalogRepository) *ListIngredientsHandler {
	return &ListIngredientsHandler{catalog: catalog}
}

// Handle executes the list ingredients query
func (h *ListIngredientsHandler) Handle(q ListIngredientsQuery) ([]domain.Ingredient, error) {
	ingredients, err := h.catalog.ListIngredients(q.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}
