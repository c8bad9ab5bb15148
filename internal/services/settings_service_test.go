package services

import (
	"context"
	"testing"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_SeedDefaultsKeepsExisting(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsService(repotest.NewStore().Settings())

	_, err := s.Set(ctx, "nomeEmpresa", &dto.SettingRequest{Value: "Minha Empresa"})
	require.NoError(t, err)

	require.NoError(t, s.SeedDefaults(ctx))
	require.NoError(t, s.SeedDefaults(ctx))

	cfg, err := s.Public(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg, len(DefaultSettings))
	assert.Equal(t, "Minha Empresa", cfg["nomeEmpresa"])
	assert.Equal(t, "contato@buscaserv.com.br", cfg["emailContato"])
}

func TestSettings_TypedValues(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsService(repotest.NewStore().Settings())

	_, err := s.Set(ctx, "manutencao", &dto.SettingRequest{Value: "true", Type: "bool"})
	require.NoError(t, err)
	_, err = s.Set(ctx, "maxBanners", &dto.SettingRequest{Value: "4", Type: "int"})
	require.NoError(t, err)

	cfg, _ := s.Public(ctx)
	assert.Equal(t, true, cfg["manutencao"])
	assert.Equal(t, 4, cfg["maxBanners"])

	var verr *ValidationError
	_, err = s.Set(ctx, "maxBanners", &dto.SettingRequest{Value: "four", Type: "int"})
	assert.ErrorAs(t, err, &verr)
	_, err = s.Set(ctx, "k", &dto.SettingRequest{Value: "{", Type: "json"})
	assert.ErrorAs(t, err, &verr)
	_, err = s.Set(ctx, "k", &dto.SettingRequest{Value: "x", Type: "float"})
	assert.ErrorAs(t, err, &verr)
	_, err = s.Set(ctx, " ", &dto.SettingRequest{Value: "x"})
	assert.ErrorAs(t, err, &verr)
}

func TestSettings_VersionedSet(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsService(repotest.NewStore().Settings())

	first, err := s.Set(ctx, "urlSite", &dto.SettingRequest{Value: "https://a"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)

	v := 1
	second, err := s.Set(ctx, "urlSite", &dto.SettingRequest{Value: "https://b", Version: &v})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	_, err = s.Set(ctx, "urlSite", &dto.SettingRequest{Value: "https://c", Version: &v})
	assert.ErrorIs(t, err, ErrVersionConflict)

	_, err = s.Set(ctx, "ghost", &dto.SettingRequest{Value: "x", Version: &v})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettings_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsService(repotest.NewStore().Settings())

	_, err := s.Set(ctx, "k", &dto.SettingRequest{Value: "v"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "k"))
	assert.ErrorIs(t, s.Delete(ctx, "k"), ErrNotFound)
}
