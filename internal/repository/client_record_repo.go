package repository

import (
	"context"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRecordRepo struct {
	db *gorm.DB
}

func NewClientRecordRepo(db *gorm.DB) *ClientRecordRepo {
	return &ClientRecordRepo{db: db}
}

func (r *ClientRecordRepo) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]models.ClientRecord, error) {
	var records []models.ClientRecord
	err := r.db.WithContext(ctx).
		Scopes(ForProvider(providerID)).
		Order("date_performed DESC").
		Find(&records).Error
	return records, err
}

func (r *ClientRecordRepo) FindOwned(ctx context.Context, providerID, id uuid.UUID) (*models.ClientRecord, error) {
	var record models.ClientRecord
	err := r.db.WithContext(ctx).
		Scopes(ForProvider(providerID)).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, notFoundIsNil(err)
	}
	return &record, nil
}

func (r *ClientRecordRepo) Create(ctx context.Context, record *models.ClientRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *ClientRecordRepo) Save(ctx context.Context, record *models.ClientRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *ClientRecordRepo) DeleteOwned(ctx context.Context, providerID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Scopes(ForProvider(providerID)).
		Where("id = ?", id).
		Delete(&models.ClientRecord{})
	return res.RowsAffected > 0, res.Error
}

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Create(ctx context.Context, form *models.ContactForm) error {
	return r.db.WithContext(ctx).Create(form).Error
}
