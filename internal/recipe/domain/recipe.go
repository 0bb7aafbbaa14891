package domain

import "time"

// Recipe represents the recipe entity together with its tag set and
// ingredient line items
type Recipe struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	AuthorID    uint               `json:"author_id" gorm:"not null;index"`
	Name        string             `json:"name" gorm:"not null"`
	Text        string             `json:"text" gorm:"type:text;not null"`
	Image       string             `json:"image"`
	CookingTime int                `json:"cooking_time" gorm:"not null;default:1"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TableName specifies the table name
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is a line item pairing one ingredient with an amount
// inside one recipe. At most one line per (recipe, ingredient).
type RecipeIngredient struct {
	ID           uint       `json:"-" gorm:"primaryKey"`
	RecipeID     uint       `json:"-" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint       `json:"id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int        `json:"amount" gorm:"not null"`
	Ingredient   Ingredient `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeFilter narrows recipe listings
type RecipeFilter struct {
	AuthorID uint
	TagSlug  string
	Limit    int
	Offset   int
}

// RecipeRepository defines the contract for recipe data access. Save and
// Replace must commit the recipe row, its line items and its tag set as a
// single transaction.
type RecipeRepository interface {
	// Save inserts a new recipe with its line items and tag set
	Save(recipe *Recipe) error
	// Replace updates the recipe's scalar fields and fully replaces its
	// line-item and tag sets
	Replace(recipe *Recipe) error
	FindByID(id uint) (*Recipe, error)
	FindAll(filter RecipeFilter) ([]Recipe, error)
	Count() (int64, error)
	Delete(id uint) error
	// CartLines returns every line item of every recipe in the user's
	// shopping cart, with ingredient details resolved
	CartLines(userID uint) ([]RecipeIngredient, error)
}
