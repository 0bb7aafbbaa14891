package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// GormMarkRepository implements MarkRepository over the favorites and
// shopping_carts tables
type GormMarkRepository struct {
	db *gorm.DB
}

// NewGormMarkRepository creates a new GORM mark repository
func NewGormMarkRepository(db *gorm.DB) *GormMarkRepository {
	return &GormMarkRepository{db: db}
}

// Add inserts a membership record. The unique (user_id, recipe_id) index is
// the authoritative race-breaker: a duplicate insert, concurrent or not,
// comes back as ErrConflict.
func (r *GormMarkRepository) Add(kind domain.MarkKind, userID, recipeID uint) error {
	var err error
	switch kind {
	case domain.KindCart:
		err = r.db.Omit("Recipe").Create(&domain.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
	case domain.KindFavorite:
		err = r.db.Omit("Recipe").Create(&domain.Favorite{UserID: userID, RecipeID: recipeID}).Error
	default:
		return fmt.Errorf("unknown mark kind: %q", kind)
	}
	return translateError(err)
}

// Remove deletes a membership record; an absent pair is ErrNotFound
func (r *GormMarkRepository) Remove(kind domain.MarkKind, userID, recipeID uint) error {
	var result *gorm.DB
	switch kind {
	case domain.KindCart:
		result = r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&domain.ShoppingCart{})
	case domain.KindFavorite:
		result = r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&domain.Favorite{})
	default:
		return fmt.Errorf("unknown mark kind: %q", kind)
	}

	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Exists reports whether the (user, recipe) pair is marked for this kind
func (r *GormMarkRepository) Exists(kind domain.MarkKind, userID, recipeID uint) (bool, error) {
	var count int64
	var err error
	switch kind {
	case domain.KindCart:
		err = r.db.Model(&domain.ShoppingCart{}).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Count(&count).Error
	case domain.KindFavorite:
		err = r.db.Model(&domain.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Count(&count).Error
	default:
		return false, fmt.Errorf("unknown mark kind: %q", kind)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}
