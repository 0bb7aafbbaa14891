package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/imagestore"
)

// RecomposeRecipeCommand represents the command to update an existing
// recipe with a full replacement of its line-item and tag sets
type RecomposeRecipeCommand struct {
	RecipeID    uint
	ActorID     uint
	Name        string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientInput
	Image       string // optional on update; empty keeps the stored image
}

// RecomposeRecipeHandler handles recipe updates
type RecomposeRecipeHandler struct {
	recipes domain.RecipeRepository
	catalog domain.CatalogRepository
	images  ImageStore
}

// NewRecomposeRecipeHandler creates a new recompose recipe handler
func NewRecomposeRecipeHandler(recipes domain.RecipeRepository, catalog domain.CatalogRepository, images ImageStore) *RecomposeRecipeHandler {
	return &RecomposeRecipeHandler{recipes: recipes, catalog: catalog, images: images}
}

// Handle validates the payload and rewrites the recipe in place. The
// previous line-item and tag sets are discarded entirely, not merged, and
// the rewrite is atomic: readers never observe the recipe with zero lines.
func (h *RecomposeRecipeHandler) Handle(cmd RecomposeRecipeCommand) (*domain.Recipe, error) {
	if cmd.RecipeID == 0 {
		return nil, fmt.Errorf("invalid recipe id")
	}

	existing, err := h.recipes.FindByID(cmd.RecipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != cmd.ActorID {
		return nil, domain.ErrForbidden
	}

	tags, lines, fieldErrs, err := resolvePayload(h.catalog, payload{
		Name:        cmd.Name,
		Text:        cmd.Text,
		CookingTime: cmd.CookingTime,
		TagIDs:      cmd.TagIDs,
		Ingredients: cmd.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	imagePath := existing.Image
	if cmd.Image != "" {
		imagePath, err = h.images.Save(cmd.Image)
		if errors.Is(err, imagestore.ErrDecode) {
			fieldErrs.Add("image", "malformed image payload")
		} else if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	recipe := &domain.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        cmd.Name,
		Text:        cmd.Text,
		Image:       imagePath,
		CookingTime: cmd.CookingTime,
		Tags:        tags,
		Ingredients: lines,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	if err := h.recipes.Replace(recipe); err != nil {
		return nil, fmt.Errorf("failed to replace recipe: %w", err)
	}

	return h.recipes.FindByID(recipe.ID)
}
