package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// GormRecipeRepository implements RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GORM recipe repository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// AutoMigrate runs database migrations for the recipe aggregate
func (r *GormRecipeRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Tag{},
		&domain.Ingredient{},
		&domain.Recipe{},
		&domain.RecipeIngredient{},
		&domain.Favorite{},
		&domain.ShoppingCart{},
	)
}

// Save inserts a new recipe with its line items and tag set in one
// transaction. Readers never observe a recipe without lines or tags.
func (r *GormRecipeRepository) Save(recipe *domain.Recipe) error {
	lines := recipe.Ingredients
	tags := recipe.Tags

	err := r.db.Transaction(func(tx *gorm.DB) error {
		recipe.Ingredients = nil
		recipe.Tags = nil
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := insertLines(tx, recipe.ID, lines); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to set tags: %w", err)
		}
		return nil
	})

	recipe.Ingredients = lines
	recipe.Tags = tags
	return translateError(err)
}

// Replace updates the recipe's scalar fields and fully replaces its
// line-item and tag sets, atomically. The previous collections are
// discarded, not merged.
func (r *GormRecipeRepository) Replace(recipe *domain.Recipe) error {
	lines := recipe.Ingredients
	tags := recipe.Tags

	err := r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image":        recipe.Image,
			"cooking_time": recipe.CookingTime,
			"updated_at":   recipe.UpdatedAt,
		}
		if err := tx.Model(&domain.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear line items: %w", err)
		}
		if err := insertLines(tx, recipe.ID, lines); err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to replace tags: %w", err)
		}
		return nil
	})

	recipe.Ingredients = lines
	recipe.Tags = tags
	return translateError(err)
}

// insertLines writes the validated line items. Ingredient rows are catalog
// data and must not be touched, hence the Omit.
func insertLines(tx *gorm.DB, recipeID uint, lines []domain.RecipeIngredient) error {
	for i := range lines {
		lines[i].ID = 0
		lines[i].RecipeID = recipeID
	}
	if err := tx.Omit("Ingredient").Create(&lines).Error; err != nil {
		return fmt.Errorf("failed to insert line items: %w", err)
	}
	return nil
}

// FindByID retrieves a recipe with its tag set and ordered line items
func (r *GormRecipeRepository) FindByID(id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id")
		}).
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &recipe, nil
}

// FindAll retrieves recipes ordered by name with optional filters
func (r *GormRecipeRepository) FindAll(filter domain.RecipeFilter) ([]domain.Recipe, error) {
	query := r.db.
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.name ASC")

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.TagSlug != "" {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []domain.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}
	return recipes, nil
}

// Count returns the total number of recipes
func (r *GormRecipeRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Recipe{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// Delete removes a recipe; line items and marks cascade
func (r *GormRecipeRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Recipe{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CartLines returns every line item of every recipe in the user's shopping
// cart, with ingredient details resolved
func (r *GormRecipeRepository) CartLines(userID uint) ([]domain.RecipeIngredient, error) {
	var lines []domain.RecipeIngredient
	err := r.db.
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Preload("Ingredient").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart line items: %w", err)
	}
	return lines, nil
}
