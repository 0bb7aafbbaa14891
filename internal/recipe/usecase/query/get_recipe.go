package query

import (
	"fmt"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// GetRecipeQuery represents the query to fetch one recipe. UserID is the
// acting user (zero for anonymous) and only influences the membership
// flags.
type GetRecipeQuery struct {
	ID     uint
	UserID uint
}

// RecipeDetail is a recipe with the acting user's membership flags resolved
type RecipeDetail struct {
	*domain.Recipe
	IsFavorited      bool `json:"is_favorited"`
	IsInShoppingCart bool `json:"is_in_shopping_cart"`
}

// GetRecipeHandler handles get recipe queries
type GetRecipeHandler struct {
	recipes domain.RecipeRepository
	marks   domain.MarkRepository
}

// NewGetRecipeHandler creates a new get recipe handler
func NewGetRecipeHandler(recipes domain.RecipeRepository, marks domain.MarkRepository) *GetRecipeHandler {
	return &GetRecipeHandler{recipes: recipes, marks: marks}
}

// Handle executes the get recipe query
func (h *GetRecipeHandler) Handle(q GetRecipeQuery) (*RecipeDetail, error) {
	recipe, err := h.recipes.FindByID(q.ID)
	if err != nil {
		return nil, err
	}

	detail := &RecipeDetail{Recipe: recipe}
	if q.UserID == 0 {
		return detail, nil
	}

	if detail.IsFavorited, err = h.marks.Exists(domain.KindFavorite, q.UserID, q.ID); err != nil {
		return nil, fmt.Errorf("failed to check favorite mark: %w", err)
	}
	if detail.IsInShoppingCart, err = h.marks.Exists(domain.KindCart, q.UserID, q.ID); err != nil {
		return nil, fmt.Errorf("failed to check cart mark: %w", err)
	}
	return detail, nil
}
