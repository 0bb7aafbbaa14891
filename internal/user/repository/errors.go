package repository

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/user/domain"
)

const pgUniqueViolation = "23505"

// translateError maps storage-layer failures to domain errors so
// duplicate registrations and double subscribes never leak a raw pq error.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pgUniqueViolation {
			return domain.ErrConflict
		}
	}
	return err
}
