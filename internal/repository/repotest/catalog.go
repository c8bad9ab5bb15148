package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository"
)

// Catalog is an in-memory versioned catalog table.
type Catalog[T any, PT repository.Entry[T]] struct {
	mu     sync.Mutex
	rows   map[uint]T
	nextID uint
}

func NewCatalog[T any, PT repository.Entry[T]]() *Catalog[T, PT] {
	return &Catalog[T, PT]{rows: map[uint]T{}}
}

func (c *Catalog[T, PT]) find(id uint) (*T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	row, ok := c.rows[id]
	if !ok {
		return nil, false
	}
	return &row, true
}

func (c *Catalog[T, PT]) filter(activeOnly bool, keep func(*T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []T{}
	for _, row := range c.rows {
		row := row
		if activeOnly && !PT(&row).Entry().Active {
			continue
		}
		if keep != nil && !keep(&row) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return PT(&out[i]).Entry().ID < PT(&out[j]).Entry().ID })
	return out
}

func (c *Catalog[T, PT]) List(_ context.Context, activeOnly bool) ([]T, error) {
	return c.filter(activeOnly, nil), nil
}

func (c *Catalog[T, PT]) FindByID(_ context.Context, id uint) (*T, error) {
	row, _ := c.find(id)
	return row, nil
}

func (c *Catalog[T, PT]) Create(_ context.Context, item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	e := PT(item).Entry()
	e.ID = c.nextID
	e.Version = 1
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	c.rows[e.ID] = *item
	return nil
}

func (c *Catalog[T, PT]) Update(_ context.Context, item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := PT(item).Entry()
	stored, ok := c.rows[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	se := PT(&stored).Entry()
	if se.Version != e.Version {
		return repository.ErrVersionConflict
	}
	e.Version++
	e.CreatedAt = se.CreatedAt
	e.UpdatedAt = time.Now()
	c.rows[e.ID] = *item
	return nil
}

func (c *Catalog[T, PT]) Delete(_ context.Context, id uint) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[id]; !ok {
		return false, nil
	}
	delete(c.rows, id)
	return true, nil
}

type CityRepo struct {
	*Catalog[models.City, *models.City]
}

type CategoryRepo struct {
	*Catalog[models.ServiceCategory, *models.ServiceCategory]
	s *Store
}

// Delete refuses categories a provider still points at, like the foreign key does.
func (r *CategoryRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	for _, p := range r.s.providers {
		if p.CategoryID == id {
			r.s.mu.Unlock()
			return false, repository.ErrInUse
		}
	}
	r.s.mu.Unlock()
	return r.Catalog.Delete(ctx, id)
}

func (r *CategoryRepo) FindBySlug(_ context.Context, slug string) (*models.ServiceCategory, error) {
	rows := r.filter(false, func(c *models.ServiceCategory) bool { return c.Slug == slug })
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

type BannerRepo struct {
	*Catalog[models.Banner, *models.Banner]
}

func (r *BannerRepo) ListByCity(_ context.Context, cityID uint, activeOnly bool) ([]models.Banner, error) {
	return r.filter(activeOnly, func(b *models.Banner) bool { return b.CityID == cityID }), nil
}

type AdvertisementRepo struct {
	*Catalog[models.Advertisement, *models.Advertisement]
}

func (r *AdvertisementRepo) IncrementClicks(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ad, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	ad.Clicks++
	r.rows[id] = ad
	return true, nil
}

func (r *AdvertisementRepo) IncrementViews(_ context.Context, ids []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if ad, ok := r.rows[id]; ok {
			ad.Views++
			r.rows[id] = ad
		}
	}
	return nil
}
