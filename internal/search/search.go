// Package search turns listing query parameters into a provider filter.
//
// A Filter is used two ways: Scope composes the SQL for the GORM repository,
// Matches and Less evaluate the same predicate in memory for test fakes.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"gorm.io/gorm"
)

const MaxResults = 50

// Query is the raw query string of GET /api/providers.
type Query struct {
	Categoria  string `query:"categoria"`
	Cidade     string `query:"cidade"`
	MinRating  string `query:"minRating"`
	Verificado string `query:"verificado"`
	Busca      string `query:"busca"`
}

// Filter is a validated Query. Zero fields impose no constraint.
type Filter struct {
	CategorySlug string
	City         string
	MinRating    *float64
	VerifiedOnly bool
	Text         string
	Limit        int
}

// InvalidParamError reports a query parameter that could not be parsed.
type InvalidParamError struct {
	Param string
	Value string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Param, e.Value)
}

// BuildQuery validates q. limit is capped at MaxResults; values <= 0 mean MaxResults.
func BuildQuery(q Query, limit int) (Filter, error) {
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}
	f := Filter{
		CategorySlug: strings.TrimSpace(q.Categoria),
		City:         strings.TrimSpace(q.Cidade),
		VerifiedOnly: q.Verificado == "true",
		Text:         strings.TrimSpace(q.Busca),
		Limit:        limit,
	}

	if raw := strings.TrimSpace(q.MinRating); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			return Filter{}, &InvalidParamError{Param: "minRating", Value: q.MinRating}
		}
		f.MinRating = &v
	}
	return f, nil
}

// Scope applies the filter, ordering and cap to a query on service_providers.
func (f Filter) Scope(db *gorm.DB) *gorm.DB {
	db = db.Select("service_providers.*").
		Joins("JOIN users ON users.id = service_providers.user_id AND users.deleted_at IS NULL").
		Joins("JOIN service_categories ON service_categories.id = service_providers.category_id").
		Where("service_providers.is_active = ? AND service_providers.has_pending_payment = ?", true, false)

	if f.CategorySlug != "" {
		db = db.Where("service_categories.slug = ?", f.CategorySlug)
	}
	if f.City != "" {
		db = db.Where("(users.city = ? OR jsonb_exists(service_providers.service_areas, ?))", f.City, f.City)
	}
	if f.MinRating != nil {
		db = db.Where("service_providers.avg_rating >= ?", *f.MinRating)
	}
	if f.VerifiedOnly {
		db = db.Where("service_providers.is_verified = ?", true)
	}
	if f.Text != "" {
		like := "%" + escapeLike(f.Text) + "%"
		db = db.Where(
			"(service_providers.business_name ILIKE ? OR users.name ILIKE ? OR service_providers.description ILIKE ?)",
			like, like, like,
		)
	}

	return db.Order("service_providers.avg_rating DESC").
		Order("service_providers.total_reviews DESC").
		Order("service_providers.created_at DESC").
		Limit(f.limit())
}

// Listed is the base predicate: only active providers with no pending
// payment appear in listings.
func Listed(p *models.ServiceProvider) bool {
	return p.IsActive && !p.HasPendingPayment
}

// Matches evaluates the filter against a provider with User and Category loaded.
func (f Filter) Matches(p *models.ServiceProvider) bool {
	if !Listed(p) {
		return false
	}
	if p.User == nil || p.User.DeletedAt.Valid {
		return false
	}
	if f.CategorySlug != "" && (p.Category == nil || p.Category.Slug != f.CategorySlug) {
		return false
	}
	if f.City != "" && p.User.City != f.City && !contains(p.ServiceAreas, f.City) {
		return false
	}
	if f.MinRating != nil && p.AvgRating < *f.MinRating {
		return false
	}
	if f.VerifiedOnly && !p.IsVerified {
		return false
	}
	if f.Text != "" {
		text := strings.ToLower(f.Text)
		name := ""
		if p.BusinessName != nil {
			name = *p.BusinessName
		}
		if !strings.Contains(strings.ToLower(name), text) &&
			!strings.Contains(strings.ToLower(p.User.Name), text) &&
			!strings.Contains(strings.ToLower(p.Description), text) {
			return false
		}
	}
	return true
}

// Less orders a before b in listing order.
func Less(a, b *models.ServiceProvider) bool {
	if a.AvgRating != b.AvgRating {
		return a.AvgRating > b.AvgRating
	}
	if a.TotalReviews != b.TotalReviews {
		return a.TotalReviews > b.TotalReviews
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (f Filter) limit() int {
	if f.Limit <= 0 || f.Limit > MaxResults {
		return MaxResults
	}
	return f.Limit
}

// Cap is the effective result limit.
func (f Filter) Cap() int { return f.limit() }

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
