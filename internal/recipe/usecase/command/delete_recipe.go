package command

import (
	"fmt"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// DeleteRecipeCommand represents the command to delete a recipe
type DeleteRecipeCommand struct {
	RecipeID uint
	ActorID  uint
}

// DeleteRecipeHandler handles recipe deletion
type DeleteRecipeHandler struct {
	recipes domain.RecipeRepository
}

// NewDeleteRecipeHandler creates a new delete recipe handler
func NewDeleteRecipeHandler(recipes domain.RecipeRepository) *DeleteRecipeHandler {
	return &DeleteRecipeHandler{recipes: recipes}
}

// Handle deletes the recipe after checking authorship. Line items and
// favorite/cart marks cascade with the recipe row.
func (h *DeleteRecipeHandler) Handle(cmd DeleteRecipeCommand) error {
	if cmd.RecipeID == 0 {
		return fmt.Errorf("invalid recipe id")
	}

	recipe, err := h.recipes.FindByID(cmd.RecipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != cmd.ActorID {
		return domain.ErrForbidden
	}

	return h.recipes.Delete(cmd.RecipeID)
}
