package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// ShoppingListQuery represents the query to aggregate a user's cart
type ShoppingListQuery struct {
	UserID uint
}

// ShoppingItem is one aggregated line of the shopping list
type ShoppingItem struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
	Unit  string `json:"measurement_unit"`
}

// ShoppingListHandler aggregates the line items of every recipe in a
// user's shopping cart
type ShoppingListHandler struct {
	recipes domain.RecipeRepository
}

// NewShoppingListHandler creates a new shopping list handler
func NewShoppingListHandler(recipes domain.RecipeRepository) *ShoppingListHandler {
	return &ShoppingListHandler{recipes: recipes}
}

// Handle groups the user's cart line items by ingredient, sums the amounts
// within each group and returns the result ordered by ingredient name. An
// empty cart yields an empty slice, not an error.
func (h *ShoppingListHandler) Handle(q ShoppingListQuery) ([]ShoppingItem, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user is required")
	}

	lines, err := h.recipes.CartLines(q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect cart line items: %w", err)
	}

	totals := make(map[uint]*ShoppingItem)
	order := make([]uint, 0, len(lines))
	for _, line := range lines {
		item, ok := totals[line.IngredientID]
		if !ok {
			item = &ShoppingItem{
				Name: line.Ingredient.Name,
				Unit: line.Ingredient.MeasurementUnit,
			}
			totals[line.IngredientID] = item
			order = append(order, line.IngredientID)
		}
		item.Total += line.Amount
	}

	items := make([]ShoppingItem, 0, len(order))
	for _, id := range order {
		items = append(items, *totals[id])
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Render produces the plain-text report, one tab-separated line per
// distinct ingredient. The delivery layer serves it as a products.txt
// attachment; rendering itself is transport-agnostic.
func Render(items []ShoppingItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s\t-- %d\t(%s)\n", item.Name, item.Total, item.Unit)
	}
	return b.String()
}
