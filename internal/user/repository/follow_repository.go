package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/user/domain"
)

// GormFollowRepository implements FollowRepository interface using GORM
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM follow repository
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Add records a subscription. A duplicate pair violates the unique index
// and comes back as ErrConflict.
func (r *GormFollowRepository) Add(follow *domain.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Remove drops a subscription, reporting ErrNotFound when it never existed
func (r *GormFollowRepository) Remove(userID, authorID uint) error {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove follow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Exists reports whether the subscription pair is present
func (r *GormFollowRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}

// ListAuthors retrieves the authors the user is subscribed to, oldest
// subscription first
func (r *GormFollowRepository) ListAuthors(userID uint, limit, offset int) ([]domain.User, error) {
	var authors []domain.User
	query := r.db.Model(&domain.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

// CountAuthors returns how many authors the user is subscribed to
func (r *GormFollowRepository) CountAuthors(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count follows: %w", err)
	}
	return count, nil
}
