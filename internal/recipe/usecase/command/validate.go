package command

import (
	"errors"
	"fmt"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// payload holds the validatable fields shared by compose and recompose
type payload struct {
	Name        string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientInput
}

// resolvePayload validates every field of a compose payload against the
// catalog and accumulates all failures into FieldErrors so they can be
// reported in one response. The ingredient scan runs in input order and
// stops at the first duplicate or unknown id; every other check always
// runs. Returns resolved tags and line items with input order preserved.
func resolvePayload(catalog domain.CatalogRepository, p payload) ([]domain.Tag, []domain.RecipeIngredient, domain.FieldErrors, error) {
	fieldErrs := domain.FieldErrors{}

	if p.Name == "" {
		fieldErrs.Add("name", "name is required")
	}
	if p.Text == "" {
		fieldErrs.Add("text", "text is required")
	}
	if p.CookingTime < 1 {
		fieldErrs.Add("cooking_time", "cooking time must be at least 1 minute")
	}

	tags, err := resolveTags(catalog, p.TagIDs, fieldErrs)
	if err != nil {
		return nil, nil, nil, err
	}

	lines, err := resolveIngredients(catalog, p.Ingredients, fieldErrs)
	if err != nil {
		return nil, nil, nil, err
	}

	return tags, lines, fieldErrs, nil
}

func resolveTags(catalog domain.CatalogRepository, tagIDs []uint, fieldErrs domain.FieldErrors) ([]domain.Tag, error) {
	if len(tagIDs) == 0 {
		fieldErrs.Add("tags", "at least one tag is required")
		return nil, nil
	}

	seen := make(map[uint]struct{}, len(tagIDs))
	tags := make([]domain.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		tag, err := catalog.FindTag(id)
		if errors.Is(err, domain.ErrNotFound) {
			fieldErrs.Add("tags", fmt.Sprintf("tag %d does not exist", id))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %d: %w", id, err)
		}
		tags = append(tags, *tag)
	}

	if len(seen) != len(tagIDs) {
		fieldErrs.Add("tags", "duplicate tag ids")
	}
	return tags, nil
}

func resolveIngredients(catalog domain.CatalogRepository, inputs []IngredientInput, fieldErrs domain.FieldErrors) ([]domain.RecipeIngredient, error) {
	if len(inputs) == 0 {
		fieldErrs.Add("ingredients", "at least one ingredient is required")
		return nil, nil
	}

	seen := make(map[uint]struct{}, len(inputs))
	lines := make([]domain.RecipeIngredient, 0, len(inputs))
	for _, input := range inputs {
		if _, dup := seen[input.IngredientID]; dup {
			fieldErrs.Add("ingredients", fmt.Sprintf("duplicate ingredient id %d", input.IngredientID))
			break
		}
		seen[input.IngredientID] = struct{}{}

		ingredient, err := catalog.FindIngredient(input.IngredientID)
		if errors.Is(err, domain.ErrNotFound) {
			fieldErrs.Add("ingredients", fmt.Sprintf("ingredient %d does not exist", input.IngredientID))
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ingredient %d: %w", input.IngredientID, err)
		}

		if input.Amount < 1 {
			fieldErrs.Add("ingredients", fmt.Sprintf("amount for ingredient %d must be a positive integer", input.IngredientID))
			continue
		}

		lines = append(lines, domain.RecipeIngredient{
			IngredientID: ingredient.ID,
			Amount:       input.Amount,
			Ingredient:   *ingredient,
		})
	}

	return lines, nil
}
