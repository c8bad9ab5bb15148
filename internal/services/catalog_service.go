package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository"
	"github.com/buscaserv/buscaserv-api/internal/security"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CatalogService curates cities, categories, banners and advertisements.
// Writes are optimistic: updates carry the version the caller read.
type CatalogService struct {
	cities     repository.CityRepository
	categories repository.CategoryRepository
	banners    repository.BannerRepository
	ads        repository.AdvertisementRepository
	sanitizer  *security.TextSanitizer
	now        func() time.Time
}

func NewCatalogService(
	cities repository.CityRepository,
	categories repository.CategoryRepository,
	banners repository.BannerRepository,
	ads repository.AdvertisementRepository,
	sanitizer *security.TextSanitizer,
) *CatalogService {
	return &CatalogService{
		cities:     cities,
		categories: categories,
		banners:    banners,
		ads:        ads,
		sanitizer:  sanitizer,
		now:        time.Now,
	}
}

// catalogErr maps repository errors for catalog writes.
func catalogErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrVersionConflict):
		return ErrVersionConflict
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return invalid(what + " already exists")
	default:
		return fmt.Errorf("failed to save %s: %w", what, err)
	}
}

func activeOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// ---- cities

func (s *CatalogService) ListCities(ctx context.Context, activeOnly bool) ([]models.City, error) {
	return s.cities.List(ctx, activeOnly)
}

func (s *CatalogService) CreateCity(ctx context.Context, req *dto.CityRequest) (*models.City, error) {
	city := models.City{CatalogEntry: models.CatalogEntry{Active: activeOr(req.Active, true)}}
	if err := s.fillCity(&city, req); err != nil {
		return nil, err
	}
	if err := s.cities.Create(ctx, &city); err != nil {
		return nil, catalogErr(err, "city")
	}
	return &city, nil
}

func (s *CatalogService) UpdateCity(ctx context.Context, id uint, req *dto.CityRequest) (*models.City, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrNotFound
	}
	if req.Version <= 0 {
		return nil, invalid("version is required")
	}
	city.Version = req.Version
	city.Active = activeOr(req.Active, city.Active)
	if err := s.fillCity(city, req); err != nil {
		return nil, err
	}
	if err := s.cities.Update(ctx, city); err != nil {
		return nil, catalogErr(err, "city")
	}
	return city, nil
}

func (s *CatalogService) fillCity(city *models.City, req *dto.CityRequest) error {
	city.Name = s.sanitizer.Clean(req.Name)
	city.State = strings.ToUpper(s.sanitizer.Clean(req.State))
	if err := required("name", city.Name, "state", city.State); err != nil {
		return err
	}
	if len(city.State) != 2 {
		return invalid("state must be a two-letter code")
	}
	return nil
}

func (s *CatalogService) DeleteCity(ctx context.Context, id uint) error {
	return s.deleted(s.cities.Delete(ctx, id))
}

// ---- categories

func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error) {
	return s.categories.List(ctx, activeOnly)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*models.ServiceCategory, error) {
	category := models.ServiceCategory{CatalogEntry: models.CatalogEntry{Active: activeOr(req.Active, true)}}
	if err := s.fillCategory(&category, req); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, catalogErr(err, "category")
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req *dto.CategoryRequest) (*models.ServiceCategory, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if req.Version <= 0 {
		return nil, invalid("version is required")
	}
	category.Version = req.Version
	category.Active = activeOr(req.Active, category.Active)
	if err := s.fillCategory(category, req); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, catalogErr(err, "category")
	}
	return category, nil
}

func (s *CatalogService) fillCategory(c *models.ServiceCategory, req *dto.CategoryRequest) error {
	c.Name = s.sanitizer.Clean(req.Name)
	if err := required("name", c.Name); err != nil {
		return err
	}
	c.Slug = Slugify(req.Slug)
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if c.Slug == "" {
		return invalid("slug cannot be derived from name")
	}
	c.Description = s.sanitizer.Clean(req.Description)
	c.Icon = s.sanitizer.Clean(req.Icon)
	return nil
}

// DeleteCategory fails with ErrCategoryInUse while any provider belongs to it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.deleted(s.categories.Delete(ctx, id))
	if errors.Is(err, repository.ErrInUse) {
		return ErrCategoryInUse
	}
	return err
}

// ---- banners

// ListBanners lists banners, restricted to cityID when it is non-zero.
func (s *CatalogService) ListBanners(ctx context.Context, cityID uint, activeOnly bool) ([]models.Banner, error) {
	if cityID == 0 {
		return s.banners.List(ctx, activeOnly)
	}
	return s.banners.ListByCity(ctx, cityID, activeOnly)
}

func (s *CatalogService) CreateBanner(ctx context.Context, req *dto.BannerRequest) (*models.Banner, error) {
	banner := models.Banner{CatalogEntry: models.CatalogEntry{Active: activeOr(req.Active, true)}}
	if err := s.fillBanner(ctx, &banner, req); err != nil {
		return nil, err
	}
	if err := s.banners.Create(ctx, &banner); err != nil {
		return nil, catalogErr(err, "banner")
	}
	return &banner, nil
}

func (s *CatalogService) UpdateBanner(ctx context.Context, id uint, req *dto.BannerRequest) (*models.Banner, error) {
	banner, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrNotFound
	}
	if req.Version <= 0 {
		return nil, invalid("version is required")
	}
	banner.Version = req.Version
	banner.Active = activeOr(req.Active, banner.Active)
	if err := s.fillBanner(ctx, banner, req); err != nil {
		return nil, err
	}
	if err := s.banners.Update(ctx, banner); err != nil {
		return nil, catalogErr(err, "banner")
	}
	return banner, nil
}

func (s *CatalogService) fillBanner(ctx context.Context, b *models.Banner, req *dto.BannerRequest) error {
	b.Title = s.sanitizer.Clean(req.Title)
	b.Image = strings.TrimSpace(req.Image)
	if err := required("title", b.Title, "image", b.Image); err != nil {
		return err
	}
	if err := s.requireCity(ctx, req.CityID); err != nil {
		return err
	}
	b.CityID = req.CityID
	b.Link = blankToNil(trimPtr(req.Link))
	return nil
}

func (s *CatalogService) DeleteBanner(ctx context.Context, id uint) error {
	return s.deleted(s.banners.Delete(ctx, id))
}

// ---- advertisements

// ListAds lists ads. With public set, only ads running now are returned
// (optionally limited to a city name, city-less ads match every city) and
// their view counters are bumped.
func (s *CatalogService) ListAds(ctx context.Context, cityName string, public bool) ([]models.Advertisement, error) {
	ads, err := s.ads.List(ctx, public)
	if err != nil {
		return nil, err
	}
	if !public {
		return ads, nil
	}

	var cityID uint
	if cityName != "" {
		cities, err := s.cities.List(ctx, true)
		if err != nil {
			return nil, err
		}
		for _, c := range cities {
			if c.Name == cityName {
				cityID = c.ID
				break
			}
		}
		if cityID == 0 {
			return []models.Advertisement{}, nil
		}
	}

	now := s.now()
	running := make([]models.Advertisement, 0, len(ads))
	ids := make([]uint, 0, len(ads))
	for _, ad := range ads {
		if !ad.Runs(now) {
			continue
		}
		if cityID != 0 && ad.CityID != nil && *ad.CityID != cityID {
			continue
		}
		running = append(running, ad)
		ids = append(ids, ad.ID)
	}
	if err := s.ads.IncrementViews(ctx, ids); err != nil {
		return nil, err
	}
	return running, nil
}

func (s *CatalogService) RecordAdClick(ctx context.Context, id uint) error {
	ok, err := s.ads.IncrementClicks(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *CatalogService) CreateAd(ctx context.Context, req *dto.AdvertisementRequest) (*models.Advertisement, error) {
	ad := models.Advertisement{CatalogEntry: models.CatalogEntry{Active: activeOr(req.Active, true)}}
	if err := s.fillAd(ctx, &ad, req); err != nil {
		return nil, err
	}
	if err := s.ads.Create(ctx, &ad); err != nil {
		return nil, catalogErr(err, "advertisement")
	}
	return &ad, nil
}

func (s *CatalogService) UpdateAd(ctx context.Context, id uint, req *dto.AdvertisementRequest) (*models.Advertisement, error) {
	ad, err := s.ads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrNotFound
	}
	if req.Version <= 0 {
		return nil, invalid("version is required")
	}
	ad.Version = req.Version
	ad.Active = activeOr(req.Active, ad.Active)
	if err := s.fillAd(ctx, ad, req); err != nil {
		return nil, err
	}
	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, catalogErr(err, "advertisement")
	}
	return ad, nil
}

func (s *CatalogService) fillAd(ctx context.Context, ad *models.Advertisement, req *dto.AdvertisementRequest) error {
	ad.Title = s.sanitizer.Clean(req.Title)
	if err := required("title", ad.Title); err != nil {
		return err
	}
	if req.StartDate == nil || req.EndDate == nil {
		return invalid("missing required fields: startDate, endDate")
	}
	if !req.EndDate.After(req.StartDate.Time) {
		return invalid("endDate must be after startDate")
	}
	switch req.Position {
	case "":
		ad.Position = models.AdPositionBanner
	case models.AdPositionBanner, models.AdPositionSidebar:
		ad.Position = req.Position
	default:
		return invalid("position must be BANNER or SIDEBAR")
	}
	if req.CityID != nil {
		if err := s.requireCity(ctx, *req.CityID); err != nil {
			return err
		}
	}

	ad.CityID = req.CityID
	ad.Description = s.sanitizer.Clean(req.Description)
	ad.Company = s.sanitizer.Clean(req.Company)
	ad.ImageURL = strings.TrimSpace(req.ImageURL)
	ad.LinkURL = strings.TrimSpace(req.LinkURL)
	ad.StartDate = req.StartDate.Time
	ad.EndDate = req.EndDate.Time
	return nil
}

func (s *CatalogService) DeleteAd(ctx context.Context, id uint) error {
	return s.deleted(s.ads.Delete(ctx, id))
}

// ---- helpers

func (s *CatalogService) requireCity(ctx context.Context, id uint) error {
	if id == 0 {
		return invalid("missing required fields: cityId")
	}
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if city == nil {
		return ErrCityNotFound
	}
	return nil
}

func (s *CatalogService) deleted(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

// Slugify lowercases s, strips accents and joins words with hyphens:
// "Encanador Hidráulico" becomes "encanador-hidraulico".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
