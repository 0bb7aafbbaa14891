package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/imagestore"
)

// IngredientInput is one (ingredient, amount) entry of a compose payload
type IngredientInput struct {
	IngredientID uint `json:"id"`
	Amount       int  `json:"amount"`
}

// ImageStore decodes an embedded image payload and persists it
type ImageStore interface {
	Save(payload string) (string, error)
}

// ComposeRecipeCommand represents the command to create a new recipe
type ComposeRecipeCommand struct {
	AuthorID    uint
	Name        string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientInput
	Image       string // base64 payload, optionally a data URI
}

// ComposeRecipeHandler handles recipe creation
type ComposeRecipeHandler struct {
	recipes domain.RecipeRepository
	catalog domain.CatalogRepository
	images  ImageStore
}

// NewComposeRecipeHandler creates a new compose recipe handler
func NewComposeRecipeHandler(recipes domain.RecipeRepository, catalog domain.CatalogRepository, images ImageStore) *ComposeRecipeHandler {
	return &ComposeRecipeHandler{recipes: recipes, catalog: catalog, images: images}
}

// Handle validates the payload and persists the recipe together with its
// line items and tag set as one unit. Validation failures come back as
// domain.FieldErrors with every failing field reported; nothing is written
// unless the whole payload is valid.
func (h *ComposeRecipeHandler) Handle(cmd ComposeRecipeCommand) (*domain.Recipe, error) {
	if cmd.AuthorID == 0 {
		return nil, fmt.Errorf("author is required")
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

	var imagePath string
	if cmd.Image == "" {
		fieldErrs.Add("image", "image is required")
	} else {
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
		AuthorID:    cmd.AuthorID,
		Name:        cmd.Name,
		Text:        cmd.Text,
		Image:       imagePath,
		CookingTime: cmd.CookingTime,
		Tags:        tags,
		Ingredients: lines,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.recipes.Save(recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	// Re-read so the caller gets the fully-assembled recipe with resolved
	// tag and ingredient details
	return h.recipes.FindByID(recipe.ID)
}
