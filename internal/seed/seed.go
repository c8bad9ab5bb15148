// Package seed loads reference catalog data and applies it idempotently.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/services"
)

//go:embed default.json
var defaultSeed []byte

type City struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Advertisement struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Company     string            `json:"company"`
	ImageURL    string            `json:"image_url"`
	LinkURL     string            `json:"link_url"`
	Position    models.AdPosition `json:"position"`
	// Days the ad runs starting from the moment it is seeded.
	DurationDays int `json:"duration_days"`
}

type File struct {
	Cities         []City          `json:"cities"`
	Categories     []Category      `json:"categories"`
	Advertisements []Advertisement `json:"advertisements"`
}

// Default returns the embedded reference data.
func Default() (*File, error) {
	return parse(defaultSeed)
}

// LoadFromFile reads a seed file; an empty path yields the embedded default.
func LoadFromFile(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*File, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

// Result counts rows created by Apply. Existing rows are left untouched.
type Result struct {
	Cities         int
	Categories     int
	Advertisements int
	Settings       int
}

type Seeder struct {
	catalog  *services.CatalogService
	settings *services.SettingsService
	auth     *services.AuthService
	now      func() time.Time
}

func NewSeeder(catalog *services.CatalogService, settings *services.SettingsService, auth *services.AuthService) *Seeder {
	return &Seeder{catalog: catalog, settings: settings, auth: auth, now: time.Now}
}

// Apply creates the admin account (when credentials are given), default
// settings and every catalog row of file that is not present yet.
func (s *Seeder) Apply(ctx context.Context, file *File, adminEmail, adminPassword string) (*Result, error) {
	res := &Result{}

	if adminEmail != "" {
		if err := s.auth.EnsureAdmin(ctx, adminEmail, adminPassword); err != nil {
			return nil, fmt.Errorf("admin: %w", err)
		}
	} else {
		slog.Warn("ADMIN_EMAIL not set, skipping admin account")
	}

	before, err := s.settings.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.settings.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	after, err := s.settings.List(ctx)
	if err != nil {
		return nil, err
	}
	res.Settings = len(after) - len(before)

	if res.Cities, err = s.cities(ctx, file.Cities); err != nil {
		return nil, fmt.Errorf("cities: %w", err)
	}
	if res.Categories, err = s.categories(ctx, file.Categories); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	if res.Advertisements, err = s.ads(ctx, file.Advertisements); err != nil {
		return nil, fmt.Errorf("advertisements: %w", err)
	}

	slog.Info("seed applied",
		"cities", res.Cities,
		"categories", res.Categories,
		"advertisements", res.Advertisements,
		"settings", res.Settings,
	)
	return res, nil
}

func (s *Seeder) cities(ctx context.Context, cities []City) (int, error) {
	existing, err := s.catalog.ListCities(ctx, false)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[cityKey(c.Name, c.State)] = true
	}

	created := 0
	for _, c := range cities {
		key := cityKey(c.Name, c.State)
		if seen[key] {
			continue
		}
		if _, err := s.catalog.CreateCity(ctx, &dto.CityRequest{Name: c.Name, State: c.State}); err != nil {
			return created, fmt.Errorf("%s: %w", c.Name, err)
		}
		seen[key] = true
		created++
	}
	return created, nil
}

func cityKey(name, state string) string {
	return strings.TrimSpace(name) + "/" + strings.ToUpper(strings.TrimSpace(state))
}

func (s *Seeder) categories(ctx context.Context, categories []Category) (int, error) {
	existing, err := s.catalog.ListCategories(ctx, false)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[c.Slug] = true
	}

	created := 0
	for _, c := range categories {
		slug := c.Slug
		if slug == "" {
			slug = services.Slugify(c.Name)
		}
		if seen[slug] {
			continue
		}
		if _, err := s.catalog.CreateCategory(ctx, &dto.CategoryRequest{
			Name:        c.Name,
			Slug:        slug,
			Description: c.Description,
			Icon:        c.Icon,
		}); err != nil {
			return created, fmt.Errorf("%s: %w", slug, err)
		}
		seen[slug] = true
		created++
	}
	return created, nil
}

func (s *Seeder) ads(ctx context.Context, ads []Advertisement) (int, error) {
	existing, err := s.catalog.ListAds(ctx, "", false)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a.Title] = true
	}

	now := s.now().UTC()
	created := 0
	for _, a := range ads {
		if seen[a.Title] {
			continue
		}
		days := a.DurationDays
		if days <= 0 {
			days = 30
		}
		if _, err := s.catalog.CreateAd(ctx, &dto.AdvertisementRequest{
			Title:       a.Title,
			Description: a.Description,
			Company:     a.Company,
			ImageURL:    a.ImageURL,
			LinkURL:     a.LinkURL,
			Position:    a.Position,
			StartDate:   &dto.Date{Time: now},
			EndDate:     &dto.Date{Time: now.AddDate(0, 0, days)},
		}); err != nil {
			return created, fmt.Errorf("%s: %w", a.Title, err)
		}
		seen[a.Title] = true
		created++
	}
	return created, nil
}
