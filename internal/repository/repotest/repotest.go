// Package repotest provides in-memory repository implementations for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository"
	"github.com/buscaserv/buscaserv-api/internal/search"
	"github.com/google/uuid"
)

// Store is the shared backing state so fakes can join users, providers and categories.
type Store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	tokens     map[uuid.UUID]*models.RefreshToken
	providers  map[uuid.UUID]*models.ServiceProvider
	reviews    []models.Review
	records    map[uuid.UUID]*models.ClientRecord
	contacts   []models.ContactForm
	settings   map[string]*models.SiteSetting
	Cities     *Catalog[models.City, *models.City]
	Categories *Catalog[models.ServiceCategory, *models.ServiceCategory]
	Banners    *Catalog[models.Banner, *models.Banner]
	Ads        *Catalog[models.Advertisement, *models.Advertisement]
}

func NewStore() *Store {
	return &Store{
		users:      map[uuid.UUID]*models.User{},
		tokens:     map[uuid.UUID]*models.RefreshToken{},
		providers:  map[uuid.UUID]*models.ServiceProvider{},
		records:    map[uuid.UUID]*models.ClientRecord{},
		settings:   map[string]*models.SiteSetting{},
		Cities:     NewCatalog[models.City](),
		Categories: NewCatalog[models.ServiceCategory](),
		Banners:    NewCatalog[models.Banner](),
		Ads:        NewCatalog[models.Advertisement](),
	}
}

func (s *Store) Users() *UserRepo                 { return &UserRepo{s} }
func (s *Store) RefreshTokens() *RefreshTokenRepo { return &RefreshTokenRepo{s} }
func (s *Store) Providers() *ProviderRepo         { return &ProviderRepo{s} }
func (s *Store) ClientRecords() *ClientRecordRepo { return &ClientRecordRepo{s} }
func (s *Store) Contacts() *ContactRepo           { return &ContactRepo{s} }
func (s *Store) Settings() *SettingRepo           { return &SettingRepo{s} }
func (s *Store) CityRepo() *CityRepo              { return &CityRepo{s.Cities} }
func (s *Store) CategoryRepo() *CategoryRepo      { return &CategoryRepo{s.Categories, s} }
func (s *Store) BannerRepo() *BannerRepo          { return &BannerRepo{s.Banners} }
func (s *Store) AdRepo() *AdvertisementRepo       { return &AdvertisementRepo{s.Ads} }

// AddReview stores a review; reviews are not written by the service itself.
func (s *Store) AddReview(r models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.reviews = append(s.reviews, r)
}

// ContactForms returns a copy of every stored contact form.
func (s *Store) ContactForms() []models.ContactForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ContactForm(nil), s.contacts...)
}

type UserRepo struct{ s *Store }

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok && !u.DeletedAt.Valid {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email && !u.DeletedAt.Valid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleClient
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id uuid.UUID, role models.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.Password = hash
	}
	return nil
}

type RefreshTokenRepo struct{ s *Store }

func (r *RefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now()
	cp := *token
	r.s.tokens[token.ID] = &cp
	return nil
}

func (r *RefreshTokenRepo) FindActiveByHash(_ context.Context, hash string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if t.TokenHash == hash && !t.Revoked {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *RefreshTokenRepo) Revoke(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok || t.Revoked {
		return false, nil
	}
	t.Revoked = true
	return true, nil
}

func (r *RefreshTokenRepo) RevokeByHash(_ context.Context, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if t.TokenHash == hash {
			t.Revoked = true
		}
	}
	return nil
}

type ProviderRepo struct{ s *Store }

// loadLocked joins User and Category onto a copy of p.
func (r *ProviderRepo) loadLocked(p *models.ServiceProvider, withUser bool) *models.ServiceProvider {
	cp := *p
	cp.ServiceAreas = append([]string(nil), p.ServiceAreas...)
	if withUser {
		if u, ok := r.s.users[p.UserID]; ok {
			uc := *u
			cp.User = &uc
		}
	}
	if c, _ := r.s.Categories.find(p.CategoryID); c != nil {
		cp.Category = c
	}
	return &cp
}

func (r *ProviderRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.ServiceProvider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.providers {
		if p.UserID == userID {
			return r.loadLocked(p, false), nil
		}
	}
	return nil, nil
}

func (r *ProviderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.ServiceProvider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.providers[id]; ok {
		return r.loadLocked(p, true), nil
	}
	return nil, nil
}

func (r *ProviderRepo) Register(_ context.Context, provider *models.ServiceProvider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.providers {
		if p.UserID == provider.UserID {
			return repository.ErrDuplicate
		}
	}
	if u, ok := r.s.users[provider.UserID]; ok && u.Role == models.RoleClient {
		u.Role = models.RoleServiceProvider
	}
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	now := time.Now()
	provider.CreatedAt, provider.UpdatedAt = now, now
	cp := *provider
	cp.User, cp.Category = nil, nil
	r.s.providers[provider.ID] = &cp
	return nil
}

func (r *ProviderRepo) Update(_ context.Context, provider *models.ServiceProvider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.providers[provider.ID]; !ok {
		return repository.ErrNotFound
	}
	provider.UpdatedAt = time.Now()
	cp := *provider
	cp.User, cp.Category = nil, nil
	r.s.providers[provider.ID] = &cp
	return nil
}

func (r *ProviderRepo) Search(_ context.Context, filter search.Filter) ([]models.ServiceProvider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hits []*models.ServiceProvider
	for _, p := range r.s.providers {
		full := r.loadLocked(p, true)
		if filter.Matches(full) {
			hits = append(hits, full)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return search.Less(hits[i], hits[j]) })
	if len(hits) > filter.Cap() {
		hits = hits[:filter.Cap()]
	}
	out := make([]models.ServiceProvider, 0, len(hits))
	for _, h := range hits {
		out = append(out, *h)
	}
	return out, nil
}

func (r *ProviderRepo) ListReviews(_ context.Context, providerID uuid.UUID, limit int) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Review
	for _, rv := range r.s.reviews {
		if rv.ServiceProviderID == providerID {
			if u, ok := r.s.users[rv.UserID]; ok {
				uc := *u
				rv.User = &uc
			}
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type ClientRecordRepo struct{ s *Store }

func (r *ClientRecordRepo) ListByProvider(_ context.Context, providerID uuid.UUID) ([]models.ClientRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.ClientRecord{}
	for _, rec := range r.s.records {
		if rec.ServiceProviderID == providerID {
			out = append(out, *rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DatePerformed.After(out[j].DatePerformed) })
	return out, nil
}

func (r *ClientRecordRepo) FindOwned(_ context.Context, providerID, id uuid.UUID) (*models.ClientRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.records[id]; ok && rec.ServiceProviderID == providerID {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *ClientRecordRepo) Create(_ context.Context, record *models.ClientRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt, record.UpdatedAt = now, now
	cp := *record
	r.s.records[record.ID] = &cp
	return nil
}

func (r *ClientRecordRepo) Save(_ context.Context, record *models.ClientRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	record.UpdatedAt = time.Now()
	cp := *record
	r.s.records[record.ID] = &cp
	return nil
}

func (r *ClientRecordRepo) DeleteOwned(_ context.Context, providerID, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.records[id]; ok && rec.ServiceProviderID == providerID {
		delete(r.s.records, id)
		return true, nil
	}
	return false, nil
}

type ContactRepo struct{ s *Store }

func (r *ContactRepo) Create(_ context.Context, form *models.ContactForm) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if form.ID == uuid.Nil {
		form.ID = uuid.New()
	}
	form.CreatedAt = time.Now()
	r.s.contacts = append(r.s.contacts, *form)
	return nil
}

type SettingRepo struct{ s *Store }

func (r *SettingRepo) List(_ context.Context) ([]models.SiteSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.SiteSetting, 0, len(r.s.settings))
	for _, v := range r.s.settings {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *SettingRepo) FindByKey(_ context.Context, key string) (*models.SiteSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.settings[key]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *SettingRepo) Upsert(_ context.Context, setting *models.SiteSetting, expectedVersion *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.settings[setting.Key]
	if !ok {
		if expectedVersion != nil && *expectedVersion != 0 {
			return repository.ErrNotFound
		}
		if setting.ID == uuid.Nil {
			setting.ID = uuid.New()
		}
		setting.Version = 1
		now := time.Now()
		setting.CreatedAt, setting.UpdatedAt = now, now
		cp := *setting
		r.s.settings[setting.Key] = &cp
		return nil
	}
	if expectedVersion != nil && *expectedVersion != existing.Version {
		return repository.ErrVersionConflict
	}
	existing.Value = setting.Value
	existing.Type = setting.Type
	existing.Version++
	existing.UpdatedAt = time.Now()
	*setting = *existing
	return nil
}

func (r *SettingRepo) CreateIfAbsent(ctx context.Context, setting *models.SiteSetting) (bool, error) {
	r.s.mu.Lock()
	_, exists := r.s.settings[setting.Key]
	r.s.mu.Unlock()
	if exists {
		return false, nil
	}
	return true, r.Upsert(ctx, setting, nil)
}

func (r *SettingRepo) Delete(_ context.Context, key string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.settings[key]; !ok {
		return false, nil
	}
	delete(r.s.settings, key)
	return true, nil
}

var (
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.RefreshTokenRepository  = (*RefreshTokenRepo)(nil)
	_ repository.ProviderRepository      = (*ProviderRepo)(nil)
	_ repository.ClientRecordRepository  = (*ClientRecordRepo)(nil)
	_ repository.ContactRepository       = (*ContactRepo)(nil)
	_ repository.SettingRepository       = (*SettingRepo)(nil)
	_ repository.CityRepository          = (*CityRepo)(nil)
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.BannerRepository        = (*BannerRepo)(nil)
	_ repository.AdvertisementRepository = (*AdvertisementRepo)(nil)
)
