package repository

import (
	"context"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) *SettingRepo {
	return &SettingRepo{db: db}
}

func (r *SettingRepo) List(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	err := r.db.WithContext(ctx).Order("key").Find(&settings).Error
	return settings, err
}

func (r *SettingRepo) FindByKey(ctx context.Context, key string) (*models.SiteSetting, error) {
	var s models.SiteSetting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error; err != nil {
		return nil, notFoundIsNil(err)
	}
	return &s, nil
}

func (r *SettingRepo) Upsert(ctx context.Context, setting *models.SiteSetting, expectedVersion *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SiteSetting
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", setting.Key).
			First(&existing).Error

		if err == gorm.ErrRecordNotFound {
			if expectedVersion != nil && *expectedVersion != 0 {
				return ErrNotFound
			}
			setting.Version = 1
			return translate(tx.Create(setting).Error)
		}
		if err != nil {
			return err
		}

		if expectedVersion != nil && *expectedVersion != existing.Version {
			return ErrVersionConflict
		}
		existing.Value = setting.Value
		existing.Type = setting.Type
		existing.Version++
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*setting = existing
		return nil
	})
}

func (r *SettingRepo) CreateIfAbsent(ctx context.Context, setting *models.SiteSetting) (bool, error) {
	setting.Version = 1
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(setting)
	return res.RowsAffected > 0, res.Error
}

func (r *SettingRepo) Delete(ctx context.Context, key string) (bool, error) {
	res := r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.SiteSetting{})
	return res.RowsAffected > 0, res.Error
}
