package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/foodgram/internal/recipe/domain"
)

type cartLinesStub struct {
	domain.RecipeRepository
	lines map[uint][]domain.RecipeIngredient
}

func (s *cartLinesStub) CartLines(userID uint) ([]domain.RecipeIngredient, error) {
	return s.lines[userID], nil
}

func line(ingredientID uint, name, unit string, amount int) domain.RecipeIngredient {
	return domain.RecipeIngredient{
		IngredientID: ingredientID,
		Amount:       amount,
		Ingredient:   domain.Ingredient{ID: ingredientID, Name: name, MeasurementUnit: unit},
	}
}

func TestShoppingList_GroupsAndSums(t *testing.T) {
	// two recipes in the cart share salt; its amounts sum across recipes
	repo := &cartLinesStub{lines: map[uint][]domain.RecipeIngredient{
		3: {
			line(10, "salt", "g", 100),
			line(11, "potato", "g", 300),
			line(10, "salt", "g", 50),
			line(12, "water", "ml", 1000),
		},
	}}
	handler := NewShoppingListHandler(repo)

	items, err := handler.Handle(ShoppingListQuery{UserID: 3})
	require.NoError(t, err)

	assert.Equal(t, []ShoppingItem{
		{Name: "potato", Total: 300, Unit: "g"},
		{Name: "salt", Total: 150, Unit: "g"},
		{Name: "water", Total: 1000, Unit: "ml"},
	}, items)
}

func TestShoppingList_EmptyCart(t *testing.T) {
	handler := NewShoppingListHandler(&cartLinesStub{lines: map[uint][]domain.RecipeIngredient{}})

	items, err := handler.Handle(ShoppingListQuery{UserID: 3})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestShoppingList_RequiresUser(t *testing.T) {
	handler := NewShoppingListHandler(&cartLinesStub{})

	_, err := handler.Handle(ShoppingListQuery{})
	require.Error(t, err)
}

func TestRenderShoppingList(t *testing.T) {
	text := Render([]ShoppingItem{
		{Name: "potato", Total: 300, Unit: "g"},
		{Name: "salt", Total: 150, Unit: "g"},
	})

	assert.Equal(t, "potato\t-- 300\t(g)\nsalt\t-- 150\t(g)\n", text)
}

func TestRenderShoppingList_Empty(t *testing.T) {
	assert.Equal(t, "", Render(nil))
}
