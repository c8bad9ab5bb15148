package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/config"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository/repotest"
	"github.com/buscaserv/buscaserv-api/internal/security"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeder(store *repotest.Store) *Seeder {
	san := security.NewTextSanitizer()
	cfg := &config.Config{JWTSecret: "test", JWTAccessExpiry: time.Minute, JWTRefreshExpiry: time.Hour}
	return NewSeeder(
		services.NewCatalogService(store.CityRepo(), store.CategoryRepo(), store.BannerRepo(), store.AdRepo(), san),
		services.NewSettingsService(store.Settings()),
		services.NewAuthService(store.Users(), store.RefreshTokens(), san, cfg),
	)
}

func TestDefault_HasReferenceData(t *testing.T) {
	file, err := Default()
	require.NoError(t, err)
	assert.Len(t, file.Categories, 7)
	assert.NotEmpty(t, file.Cities)
	require.Len(t, file.Advertisements, 2)
	assert.Equal(t, models.AdPositionSidebar, file.Advertisements[1].Position)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories":[{"name":"Jardineiros"}]}`), 0o600))

	file, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, file.Categories, 1)
	assert.Equal(t, "Jardineiros", file.Categories[0].Name)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestApply_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	s := newSeeder(store)
	file, err := Default()
	require.NoError(t, err)

	first, err := s.Apply(ctx, file, "Admin@BuscaServ.com.br", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, len(file.Cities), first.Cities)
	assert.Equal(t, 7, first.Categories)
	assert.Equal(t, 2, first.Advertisements)
	assert.Equal(t, len(services.DefaultSettings), first.Settings)

	admin, err := store.Users().FindByEmail(ctx, "admin@buscaserv.com.br")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	second, err := s.Apply(ctx, file, "admin@buscaserv.com.br", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, Result{}, *second)
}

func TestApply_SlugFromName(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	s := newSeeder(store)

	_, err := s.Apply(ctx, &File{Categories: []Category{{Name: "Técnicos de Ar"}}}, "", "")
	require.NoError(t, err)

	c, err := store.CategoryRepo().FindBySlug(ctx, "tecnicos-de-ar")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.Active)
}
