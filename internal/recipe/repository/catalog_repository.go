package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// GormCatalogRepository implements CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// CreateTag inserts a new tag; duplicate slugs are rejected
func (r *GormCatalogRepository) CreateTag(tag *domain.Tag) error {
	return translateError(r.db.Create(tag).Error)
}

// FindTag retrieves a tag by ID
func (r *GormCatalogRepository) FindTag(id uint) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

// ListTags retrieves all tags ordered by name
func (r *GormCatalogRepository) ListTags() ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag
func (r *GormCatalogRepository) DeleteTag(id uint) error {
	result := r.db.Delete(&domain.Tag{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateIngredient inserts a new catalog ingredient
func (r *GormCatalogRepository) CreateIngredient(ingredient *domain.Ingredient) error {
	return translateError(r.db.Create(ingredient).Error)
}

// FindIngredient retrieves an ingredient by ID
func (r *GormCatalogRepository) FindIngredient(id uint) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &ingredient, nil
}

// ListIngredients retrieves ingredients ordered by name, optionally
// filtered by a case-insensitive name prefix
func (r *GormCatalogRepository) ListIngredients(namePrefix string) ([]domain.Ingredient, error) {
	query := r.db.Order("name ASC")
	if namePrefix != "" {
		query = query.Where("name ILIKE ?", namePrefix+"%")
	}

	var ingredients []domain.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// DeleteIngredient removes an ingredient. The foreign-key RESTRICT on
// recipe_ingredients blocks the delete while any recipe references it,
// which surfaces as ErrConflict.
func (r *GormCatalogRepository) DeleteIngredient(id uint) error {
	result := r.db.Delete(&domain.Ingredient{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
