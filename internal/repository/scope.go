package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForProvider returns a GORM scope that filters by owning provider.
func ForProvider(providerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("service_provider_id = ?", providerID)
	}
}

// ActiveOnly filters catalog rows by their active flag when enabled.
func ActiveOnly(enabled bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !enabled {
			return db
		}
		return db.Where("active = ?", true)
	}
}

// translate maps driver errors (already translated by gorm) onto repository errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInUse
	default:
		return err
	}
}

func notFoundIsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
