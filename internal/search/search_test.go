package search

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ptr(s string) *string { return &s }

func provider(name string, rating float64, reviews int) *models.ServiceProvider {
	return &models.ServiceProvider{
		BusinessName: ptr(name),
		Description:  "Serviços gerais",
		IsActive:     true,
		AvgRating:    rating,
		TotalReviews: reviews,
		User:         &models.User{Name: "Owner " + name, City: "Campinas"},
		Category:     &models.ServiceCategory{Slug: "eletricista"},
	}
}

func TestBuildQuery_Defaults(t *testing.T) {
	f, err := BuildQuery(Query{}, 0)
	require.NoError(t, err)
	assert.Equal(t, MaxResults, f.Cap())
	assert.Nil(t, f.MinRating)
	assert.False(t, f.VerifiedOnly)

	f, err = BuildQuery(Query{}, 500)
	require.NoError(t, err)
	assert.Equal(t, MaxResults, f.Cap())

	f, err = BuildQuery(Query{}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, f.Cap())
}

func TestBuildQuery_MinRating(t *testing.T) {
	f, err := BuildQuery(Query{MinRating: "4.5"}, 0)
	require.NoError(t, err)
	require.NotNil(t, f.MinRating)
	assert.Equal(t, 4.5, *f.MinRating)

	for _, bad := range []string{"abc", "-1", "5.1"} {
		_, err := BuildQuery(Query{MinRating: bad}, 0)
		var perr *InvalidParamError
		require.ErrorAs(t, err, &perr, bad)
		assert.Equal(t, "minRating", perr.Param)
	}
}

func TestBuildQuery_VerifiedOnlyWhenTrue(t *testing.T) {
	for in, want := range map[string]bool{"true": true, "false": false, "": false, "1": false} {
		f, err := BuildQuery(Query{Verificado: in}, 0)
		require.NoError(t, err)
		assert.Equal(t, want, f.VerifiedOnly, "verificado=%q", in)
	}
}

func TestMatches_MinRatingInclusive(t *testing.T) {
	f, err := BuildQuery(Query{MinRating: "4.5"}, 0)
	require.NoError(t, err)

	assert.False(t, f.Matches(provider("a", 4.4, 3)))
	assert.True(t, f.Matches(provider("b", 4.5, 3)))
}

func TestMatches_BasePredicate(t *testing.T) {
	f, _ := BuildQuery(Query{}, 0)

	inactive := provider("a", 5, 1)
	inactive.IsActive = false
	assert.False(t, f.Matches(inactive))

	pending := provider("b", 5, 1)
	pending.HasPendingPayment = true
	assert.False(t, f.Matches(pending))

	assert.True(t, f.Matches(provider("c", 0, 0)))
}

func TestMatches_CityOrServiceArea(t *testing.T) {
	f, _ := BuildQuery(Query{Cidade: "Sumaré"}, 0)

	home := provider("home", 4, 1)
	home.User.City = "Sumaré"
	area := provider("area", 4, 1)
	area.ServiceAreas = []string{"Hortolândia", "Sumaré"}
	neither := provider("neither", 4, 1)

	assert.True(t, f.Matches(home))
	assert.True(t, f.Matches(area))
	assert.False(t, f.Matches(neither))
}

func TestMatches_TextAndCityBothApply(t *testing.T) {
	f, _ := BuildQuery(Query{Cidade: "Campinas", Busca: "ELÉTRICA"}, 0)

	match := provider("Elétrica Silva", 4, 1)
	other := provider("Pinturas Souza", 4, 1)
	elsewhere := provider("Elétrica Lima", 4, 1)
	elsewhere.User.City = "Santos"

	assert.True(t, f.Matches(match))
	assert.False(t, f.Matches(other))
	assert.False(t, f.Matches(elsewhere))
}

func TestMatches_VerifiedAndCategory(t *testing.T) {
	f, _ := BuildQuery(Query{Verificado: "true", Categoria: "eletricista"}, 0)

	p := provider("a", 4, 1)
	assert.False(t, f.Matches(p))
	p.IsVerified = true
	assert.True(t, f.Matches(p))
	p.Category.Slug = "pedreiro"
	assert.False(t, f.Matches(p))
}

func TestLess_Ordering(t *testing.T) {
	now := time.Now()
	a := provider("a", 4.9, 10)
	b := provider("b", 4.9, 25)
	c := provider("c", 4.9, 25)
	c.CreatedAt = now
	b.CreatedAt = now.Add(-time.Hour)
	d := provider("d", 3.0, 100)

	list := []*models.ServiceProvider{d, a, b, c}
	sort.SliceStable(list, func(i, j int) bool { return Less(list[i], list[j]) })

	var names []string
	for _, p := range list {
		names = append(names, *p.BusinessName)
	}
	assert.Equal(t, []string{"c", "b", "a", "d"}, names)
}

func TestScope_SQL(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost dbname=test"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	f, err := BuildQuery(Query{Categoria: "pedreiro", Cidade: "Campinas", MinRating: "4", Verificado: "true", Busca: "50%"}, 0)
	require.NoError(t, err)

	var out []models.ServiceProvider
	stmt := db.Model(&models.ServiceProvider{}).Scopes(f.Scope).Find(&out).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "service_providers.is_active")
	assert.Contains(t, sql, "service_providers.has_pending_payment")
	assert.Contains(t, sql, "service_categories.slug")
	assert.Contains(t, sql, "users.city = ")
	assert.Contains(t, sql, "jsonb_exists(service_providers.service_areas")
	assert.Contains(t, sql, "service_providers.avg_rating >=")
	assert.Contains(t, sql, "service_providers.is_verified")
	assert.Contains(t, sql, "users.name ILIKE")

	rating := strings.Index(sql, "ORDER BY service_providers.avg_rating DESC")
	reviews := strings.Index(sql, "service_providers.total_reviews DESC")
	created := strings.Index(sql, "service_providers.created_at DESC")
	require.True(t, rating > 0)
	assert.True(t, rating < reviews && reviews < created)

	assert.Contains(t, stmt.Vars, `%50\%%`)
	assert.Contains(t, stmt.Vars, "Campinas")
}
