package repository

import (
	"context"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/search"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProviderRepo struct {
	db *gorm.DB
}

func NewProviderRepo(db *gorm.DB) *ProviderRepo {
	return &ProviderRepo{db: db}
}

func (r *ProviderRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	err := r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, notFoundIsNil(err)
	}
	return &p, nil
}

func (r *ProviderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	err := r.db.WithContext(ctx).Preload("User").Preload("Category").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, notFoundIsNil(err)
	}
	return &p, nil
}

func (r *ProviderRepo) Register(ctx context.Context, provider *models.ServiceProvider) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Admins keep their role when they also offer services.
		if err := tx.Model(&models.User{}).
			Where("id = ? AND role = ?", provider.UserID, models.RoleClient).
			Update("role", models.RoleServiceProvider).Error; err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Create(provider).Error)
	})
}

func (r *ProviderRepo) Update(ctx context.Context, provider *models.ServiceProvider) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(provider).Error
}

func (r *ProviderRepo) Search(ctx context.Context, filter search.Filter) ([]models.ServiceProvider, error) {
	var providers []models.ServiceProvider
	err := r.db.WithContext(ctx).
		Model(&models.ServiceProvider{}).
		Scopes(filter.Scope).
		Preload("User").
		Preload("Category").
		Find(&providers).Error
	return providers, err
}

func (r *ProviderRepo) ListReviews(ctx context.Context, providerID uuid.UUID, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("service_provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}
