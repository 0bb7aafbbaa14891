package command

import (
	"fmt"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// AddMarkCommand represents the command to add a (user, recipe) membership
// record of the given kind
type AddMarkCommand struct {
	UserID   uint
	RecipeID uint
	Kind     domain.MarkKind
}

// AddMarkHandler handles favorite and shopping-cart additions. Both kinds
// share the same mechanics; the kind tag selects the relation.
type AddMarkHandler struct {
	recipes domain.RecipeRepository
	marks   domain.MarkRepository
}

// NewAddMarkHandler creates a new add mark handler
func NewAddMarkHandler(recipes domain.RecipeRepository, marks domain.MarkRepository) *AddMarkHandler {
	return &AddMarkHandler{recipes: recipes, marks: marks}
}

// Handle resolves the recipe and records the membership. A missing recipe
// is ErrNotFound; a duplicate pair is ErrConflict, detected by the storage
// uniqueness constraint rather than a check-then-act lookup.
func (h *AddMarkHandler) Handle(cmd AddMarkCommand) (*domain.RecipeTarget, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user is required")
	}

	recipe, err := h.recipes.FindByID(cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	if err := h.marks.Add(cmd.Kind, cmd.UserID, cmd.RecipeID); err != nil {
		return nil, err
	}

	return &domain.RecipeTarget{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}, nil
}

// RemoveMarkCommand represents the command to remove a membership record
type RemoveMarkCommand struct {
	UserID   uint
	RecipeID uint
	Kind     domain.MarkKind
}

// RemoveMarkHandler handles favorite and shopping-cart removals
type RemoveMarkHandler struct {
	marks domain.MarkRepository
}

// NewRemoveMarkHandler creates a new remove mark handler
func NewRemoveMarkHandler(marks domain.MarkRepository) *RemoveMarkHandler {
	return &RemoveMarkHandler{marks: marks}
}

// Handle deletes the membership record; removing a non-member is ErrNotFound
func (h *RemoveMarkHandler) Handle(cmd RemoveMarkCommand) error {
	if cmd.UserID == 0 {
		return fmt.Errorf("user is required")
	}
	return h.marks.Remove(cmd.Kind, cmd.UserID, cmd.RecipeID)
}
