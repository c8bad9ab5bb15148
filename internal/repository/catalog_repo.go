package repository

import (
	"context"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"gorm.io/gorm"
)

// Entry is satisfied by pointers to structs embedding models.CatalogEntry.
type Entry[T any] interface {
	*T
	Entry() *models.CatalogEntry
}

// Catalog is the GORM implementation of CatalogRepository.
type Catalog[T any, PT Entry[T]] struct {
	db *gorm.DB
}

func NewCatalog[T any, PT Entry[T]](db *gorm.DB) *Catalog[T, PT] {
	return &Catalog[T, PT]{db: db}
}

func (r *Catalog[T, PT]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Model(new(T)).Scopes(ActiveOnly(activeOnly)).Order("id").Find(&items).Error
	return items, err
}

func (r *Catalog[T, PT]) FindByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFoundIsNil(err)
	}
	return &item, nil
}

func (r *Catalog[T, PT]) Create(ctx context.Context, item *T) error {
	entry := PT(item).Entry()
	entry.ID = 0
	entry.Version = 1
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *Catalog[T, PT]) Update(ctx context.Context, item *T) error {
	entry := PT(item).Entry()
	expected := entry.Version
	entry.Version = expected + 1

	res := r.db.WithContext(ctx).
		Model(item).
		Where("version = ?", expected).
		Select("*").
		Omit("id", "created_at").
		Updates(item)
	if res.Error != nil {
		entry.Version = expected
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	entry.Version = expected
	current, err := r.FindByID(ctx, entry.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	return ErrVersionConflict
}

func (r *Catalog[T, PT]) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	return res.RowsAffected > 0, translate(res.Error)
}

type CityRepo struct {
	*Catalog[models.City, *models.City]
}

func NewCityRepo(db *gorm.DB) *CityRepo {
	return &CityRepo{Catalog: NewCatalog[models.City](db)}
}

type CategoryRepo struct {
	*Catalog[models.ServiceCategory, *models.ServiceCategory]
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{Catalog: NewCatalog[models.ServiceCategory](db), db: db}
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.ServiceCategory, error) {
	var c models.ServiceCategory
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, notFoundIsNil(err)
	}
	return &c, nil
}

type BannerRepo struct {
	*Catalog[models.Banner, *models.Banner]
	db *gorm.DB
}

func NewBannerRepo(db *gorm.DB) *BannerRepo {
	return &BannerRepo{Catalog: NewCatalog[models.Banner](db), db: db}
}

func (r *BannerRepo) ListByCity(ctx context.Context, cityID uint, activeOnly bool) ([]models.Banner, error) {
	var banners []models.Banner
	err := r.db.WithContext(ctx).
		Scopes(ActiveOnly(activeOnly)).
		Where("city_id = ?", cityID).
		Order("id").
		Find(&banners).Error
	return banners, err
}

type AdvertisementRepo struct {
	*Catalog[models.Advertisement, *models.Advertisement]
	db *gorm.DB
}

func NewAdvertisementRepo(db *gorm.DB) *AdvertisementRepo {
	return &AdvertisementRepo{Catalog: NewCatalog[models.Advertisement](db), db: db}
}

// Counters do not bump Version, they are not admin edits.
func (r *AdvertisementRepo) IncrementClicks(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Advertisement{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1"))
	return res.RowsAffected > 0, res.Error
}

func (r *AdvertisementRepo) IncrementViews(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Advertisement{}).
		Where("id IN ?", ids).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
