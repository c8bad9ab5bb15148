// Package repository holds the persistence interfaces and their GORM implementations.
// Finders return (nil, nil) when nothing matches.
package repository

import (
	"context"
	"errors"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/search"
	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate key")
	ErrVersionConflict = errors.New("version conflict")
	ErrInUse           = errors.New("record is still referenced")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Create returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindActiveByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// Revoke reports false when the token was already revoked.
	Revoke(ctx context.Context, id uuid.UUID) (bool, error)
	RevokeByHash(ctx context.Context, hash string) error
}

type ProviderRepository interface {
	// FindByUserID preloads Category.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.ServiceProvider, error)
	// FindByID preloads User and Category.
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceProvider, error)
	// Register flips the owner's role to SERVICE_PROVIDER and inserts the
	// profile in one transaction. ErrDuplicate if the user already has one.
	Register(ctx context.Context, provider *models.ServiceProvider) error
	Update(ctx context.Context, provider *models.ServiceProvider) error
	Search(ctx context.Context, filter search.Filter) ([]models.ServiceProvider, error)
	ListReviews(ctx context.Context, providerID uuid.UUID, limit int) ([]models.Review, error)
}

type ClientRecordRepository interface {
	// ListByProvider orders by date performed, newest first.
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]models.ClientRecord, error)
	// FindOwned matches on both id and owner.
	FindOwned(ctx context.Context, providerID, id uuid.UUID) (*models.ClientRecord, error)
	Create(ctx context.Context, record *models.ClientRecord) error
	Save(ctx context.Context, record *models.ClientRecord) error
	DeleteOwned(ctx context.Context, providerID, id uuid.UUID) (bool, error)
}

type ContactRepository interface {
	Create(ctx context.Context, form *models.ContactForm) error
}

// CatalogRepository is the versioned store shared by admin-curated lists.
// Update expects item.Version to hold the version the caller read; on success
// it is incremented. A stale version yields ErrVersionConflict, a missing row
// ErrNotFound.
type CatalogRepository[T any] interface {
	List(ctx context.Context, activeOnly bool) ([]T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type CityRepository interface {
	CatalogRepository[models.City]
}

type CategoryRepository interface {
	CatalogRepository[models.ServiceCategory]
	FindBySlug(ctx context.Context, slug string) (*models.ServiceCategory, error)
}

type BannerRepository interface {
	CatalogRepository[models.Banner]
	ListByCity(ctx context.Context, cityID uint, activeOnly bool) ([]models.Banner, error)
}

type AdvertisementRepository interface {
	CatalogRepository[models.Advertisement]
	IncrementClicks(ctx context.Context, id uint) (bool, error)
	IncrementViews(ctx context.Context, ids []uint) error
}

type SettingRepository interface {
	List(ctx context.Context) ([]models.SiteSetting, error)
	FindByKey(ctx context.Context, key string) (*models.SiteSetting, error)
	// Upsert writes key. When expectedVersion is non-nil it must match the stored row.
	Upsert(ctx context.Context, setting *models.SiteSetting, expectedVersion *int) error
	// CreateIfAbsent reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, setting *models.SiteSetting) (bool, error)
	Delete(ctx context.Context, key string) (bool, error)
}
