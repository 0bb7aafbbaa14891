package query

import (
	"fmt"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// ListRecipesQuery represents the query to list recipes
type ListRecipesQuery struct {
	AuthorID uint   // Optional: filter by author
	TagSlug  string // Optional: filter by tag slug
	Limit    int
	Offset   int
}

// ListRecipesHandler handles list recipes queries
type ListRecipesHandler struct {
	recipes domain.RecipeRepository
}

// NewListRecipesHandler creates a new list recipes handler
func NewListRecipesHandler(recipes domain.RecipeRepository) *ListRecipesHandler {
	return &ListRecipesHandler{recipes: recipes}
}

// Handle executes the list recipes query; listings are name-ordered
func (h *ListRecipesHandler) Handle(q ListRecipesQuery) ([]domain.Recipe, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}

	recipes, err := h.recipes.FindAll(domain.RecipeFilter{
		AuthorID: q.AuthorID,
		TagSlug:  q.TagSlug,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}
