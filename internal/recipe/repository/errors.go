package repository

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// Postgres error codes the repositories care about
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps storage-layer failures to domain errors. Unique and
// foreign-key violations become ErrConflict so concurrent toggles and
// protected deletes never leak a raw pq error.
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
		switch pqErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return domain.ErrConflict
		}
	}
	return err
}
