package services

import (
	"context"
	"testing"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/config"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository/repotest"
	"github.com/buscaserv/buscaserv-api/internal/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		SearchMaxResults: 50,
	}
}

type fixture struct {
	store     *repotest.Store
	sanitizer *security.TextSanitizer
	providers *ProviderService
	records   *ClientRecordService
	dashboard *DashboardService
	catalog   *CatalogService
	auth      *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.NewStore()
	san := security.NewTextSanitizer()
	f := &fixture{
		store:     store,
		sanitizer: san,
		providers: NewProviderService(store.Providers(), store.CategoryRepo(), san, 50),
		records:   NewClientRecordService(store.ClientRecords(), san),
		dashboard: NewDashboardService(store.ClientRecords()),
		catalog:   NewCatalogService(store.CityRepo(), store.CategoryRepo(), store.BannerRepo(), store.AdRepo(), san),
		auth:      NewAuthService(store.Users(), store.RefreshTokens(), san, testConfig()),
	}
	return f
}

func (f *fixture) category(t *testing.T, name, slug string, active bool) *models.ServiceCategory {
	t.Helper()
	c := &models.ServiceCategory{CatalogEntry: models.CatalogEntry{Active: active}, Name: name, Slug: slug}
	require.NoError(t, f.store.CategoryRepo().Create(context.Background(), c))
	return c
}

func (f *fixture) user(t *testing.T, name, city string) *models.User {
	t.Helper()
	u := &models.User{
		ID:    uuid.New(),
		Email: uuid.NewString() + "@example.com",
		Name:  name,
		City:  city,
		Role:  models.RoleClient,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}
