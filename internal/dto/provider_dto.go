package dto

import (
	"time"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/google/uuid"
)

type RegisterProviderRequest struct {
	// CategoryID carries the category slug.
	CategoryID     string   `json:"categoryId"`
	BusinessName   *string  `json:"businessName"`
	Description    string   `json:"description"`
	Experience     *string  `json:"experience"`
	Certifications *string  `json:"certifications"`
	WorkingHours   *string  `json:"workingHours"`
	ServiceAreas   []string `json:"serviceAreas"`
	PriceRange     *string  `json:"priceRange"`
}

type RegisterProviderResponse struct {
	Message  string                  `json:"message"`
	Provider ProviderRegisterSummary `json:"provider"`
}

type ProviderRegisterSummary struct {
	ID           uuid.UUID `json:"id"`
	BusinessName *string   `json:"businessName"`
	Category     string    `json:"category"`
}

// UpdateProviderRequest edits the caller's own profile. Verification and
// payment flags are not writable here.
type UpdateProviderRequest struct {
	CategoryID     *string   `json:"categoryId"`
	BusinessName   *string   `json:"businessName"`
	Description    *string   `json:"description"`
	Experience     *string   `json:"experience"`
	Certifications *string   `json:"certifications"`
	WorkingHours   *string   `json:"workingHours"`
	ServiceAreas   *[]string `json:"serviceAreas"`
	PriceRange     *string   `json:"priceRange"`
	IsActive       *bool     `json:"isActive"`
}

type ProviderUser struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	City  string `json:"city"`
}

type ProviderCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProviderListing struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"userId"`
	CategoryID     uint              `json:"categoryId"`
	BusinessName   *string           `json:"businessName"`
	Description    string            `json:"description"`
	Experience     *string           `json:"experience"`
	Certifications *string           `json:"certifications"`
	WorkingHours   *string           `json:"workingHours"`
	ServiceAreas   []string          `json:"serviceAreas"`
	PriceRange     *string           `json:"priceRange"`
	IsVerified     bool              `json:"isVerified"`
	IsActive       bool              `json:"isActive"`
	AvgRating      float64           `json:"avgRating"`
	TotalReviews   int               `json:"totalReviews"`
	CreatedAt      time.Time         `json:"createdAt"`
	User           *ProviderUser     `json:"user,omitempty"`
	Category       *ProviderCategory `json:"category,omitempty"`
}

func NewProviderListing(p *models.ServiceProvider) ProviderListing {
	out := ProviderListing{
		ID:             p.ID,
		UserID:         p.UserID,
		CategoryID:     p.CategoryID,
		BusinessName:   p.BusinessName,
		Description:    p.Description,
		Experience:     p.Experience,
		Certifications: p.Certifications,
		WorkingHours:   p.WorkingHours,
		ServiceAreas:   []string(p.ServiceAreas),
		PriceRange:     p.PriceRange,
		IsVerified:     p.IsVerified,
		IsActive:       p.IsActive,
		AvgRating:      p.AvgRating,
		TotalReviews:   p.TotalReviews,
		CreatedAt:      p.CreatedAt,
	}
	if out.ServiceAreas == nil {
		out.ServiceAreas = []string{}
	}
	if p.User != nil {
		out.User = &ProviderUser{Name: p.User.Name, Phone: p.User.Phone, City: p.User.City}
	}
	if p.Category != nil {
		out.Category = &ProviderCategory{Name: p.Category.Name, Slug: p.Category.Slug}
	}
	return out
}

type ProviderSearchResponse struct {
	Providers []ProviderListing `json:"providers"`
	Total     int               `json:"total"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type PublicProfileResponse struct {
	Provider ProviderListing  `json:"provider"`
	Reviews  []ReviewResponse `json:"reviews"`
}
