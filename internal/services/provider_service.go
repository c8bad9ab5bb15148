package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository"
	"github.com/buscaserv/buscaserv-api/internal/search"
	"github.com/buscaserv/buscaserv-api/internal/security"
	"github.com/google/uuid"
)

const publicReviewLimit = 10

type ProviderService struct {
	providers  repository.ProviderRepository
	categories repository.CategoryRepository
	sanitizer  *security.TextSanitizer
	maxResults int
}

func NewProviderService(providers repository.ProviderRepository, categories repository.CategoryRepository, sanitizer *security.TextSanitizer, maxResults int) *ProviderService {
	return &ProviderService{
		providers:  providers,
		categories: categories,
		sanitizer:  sanitizer,
		maxResults: maxResults,
	}
}

// Resolve returns the caller's provider profile or ErrProviderNotFound.
func (s *ProviderService) Resolve(ctx context.Context, userID uuid.UUID) (*models.ServiceProvider, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	p, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProviderNotFound
	}
	return p, nil
}

func (s *ProviderService) Register(ctx context.Context, userID uuid.UUID, req *dto.RegisterProviderRequest) (*dto.RegisterProviderResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := required("categoryId", req.CategoryID, "description", req.Description); err != nil {
		return nil, err
	}
	areas := s.cleanAreas(req.ServiceAreas)
	if len(areas) == 0 {
		return nil, invalid("missing required fields: serviceAreas")
	}

	existing, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	category, err := s.activeCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	provider := models.ServiceProvider{
		ID:                uuid.New(),
		UserID:            userID,
		CategoryID:        category.ID,
		BusinessName:      s.optional(req.BusinessName),
		Description:       s.sanitizer.Clean(req.Description),
		Experience:        s.optional(req.Experience),
		Certifications:    s.optional(req.Certifications),
		WorkingHours:      s.optional(req.WorkingHours),
		ServiceAreas:      areas,
		PriceRange:        s.optional(req.PriceRange),
		IsVerified:        false,
		IsActive:          true,
		HasPendingPayment: false,
	}
	if err := s.providers.Register(ctx, &provider); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to register provider: %w", err)
	}

	slog.Info("provider registered", "user_id", userID, "provider_id", provider.ID, "category", category.Slug)

	return &dto.RegisterProviderResponse{
		Message: "Provider registration completed",
		Provider: dto.ProviderRegisterSummary{
			ID:           provider.ID,
			BusinessName: provider.BusinessName,
			Category:     category.Name,
		},
	}, nil
}

func (s *ProviderService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProviderListing, error) {
	p, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := dto.NewProviderListing(p)
	return &out, nil
}

// UpdateProfile applies a partial update. Last writer wins.
func (s *ProviderService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProviderRequest) (*dto.ProviderListing, error) {
	p, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		category, err := s.activeCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = category.ID
		p.Category = category
	}
	if req.Description != nil {
		desc := s.sanitizer.Clean(*req.Description)
		if desc == "" {
			return nil, invalid("description cannot be empty")
		}
		p.Description = desc
	}
	if req.ServiceAreas != nil {
		areas := s.cleanAreas(*req.ServiceAreas)
		if len(areas) == 0 {
			return nil, invalid("serviceAreas cannot be empty")
		}
		p.ServiceAreas = areas
	}
	if req.BusinessName != nil {
		p.BusinessName = s.optional(req.BusinessName)
	}
	if req.Experience != nil {
		p.Experience = s.optional(req.Experience)
	}
	if req.Certifications != nil {
		p.Certifications = s.optional(req.Certifications)
	}
	if req.WorkingHours != nil {
		p.WorkingHours = s.optional(req.WorkingHours)
	}
	if req.PriceRange != nil {
		p.PriceRange = s.optional(req.PriceRange)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	out := dto.NewProviderListing(p)
	return &out, nil
}

// PublicProfile returns a listed provider with its latest reviews. Hidden
// providers are reported as not found.
func (s *ProviderService) PublicProfile(ctx context.Context, id uuid.UUID) (*dto.PublicProfileResponse, error) {
	p, err := s.providers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !search.Listed(p) {
		return nil, ErrProviderNotFound
	}

	reviews, err := s.providers.ListReviews(ctx, p.ID, publicReviewLimit)
	if err != nil {
		return nil, err
	}
	out := &dto.PublicProfileResponse{
		Provider: dto.NewProviderListing(p),
		Reviews:  make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		author := ""
		if r.User != nil {
			author = r.User.Name
		}
		out.Reviews = append(out.Reviews, dto.ReviewResponse{
			ID:        r.ID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Author:    author,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

func (s *ProviderService) Search(ctx context.Context, q search.Query) (*dto.ProviderSearchResponse, error) {
	filter, err := search.BuildQuery(q, s.maxResults)
	if err != nil {
		return nil, invalid(err.Error())
	}

	providers, err := s.providers.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}

	out := &dto.ProviderSearchResponse{
		Providers: make([]dto.ProviderListing, 0, len(providers)),
		Total:     len(providers),
	}
	for i := range providers {
		out.Providers = append(out.Providers, dto.NewProviderListing(&providers[i]))
	}
	return out, nil
}

func (s *ProviderService) activeCategory(ctx context.Context, slug string) (*models.ServiceCategory, error) {
	category, err := s.categories.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil || !category.Active {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// optional sanitizes v and maps blank to nil.
func (s *ProviderService) optional(v *string) *string {
	if v == nil {
		return nil
	}
	clean := s.sanitizer.Clean(*v)
	if clean == "" {
		return nil
	}
	return &clean
}

// cleanAreas sanitizes and dedupes service areas, dropping blanks.
func (s *ProviderService) cleanAreas(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = s.sanitizer.Clean(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
