package services

import (
	"context"
	"testing"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, s *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := s.Register(context.Background(), &dto.RegisterRequest{
		Email: email, Password: "senha-forte-1", Name: "Lucas", City: "Campinas",
	})
	require.NoError(t, err)
	return resp
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp := register(t, f.auth, "Lucas@Example.com ")
	assert.Equal(t, "lucas@example.com", resp.User.Email)
	assert.Equal(t, models.RoleClient, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	_, err := f.auth.Register(ctx, &dto.RegisterRequest{Email: "lucas@example.com", Password: "outra-senha", Name: "L"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "lucas@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "senha-forte-1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "LUCAS@example.com", Password: "senha-forte-1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuth_RegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var verr *ValidationError

	_, err := f.auth.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "short", Name: "A"})
	assert.ErrorAs(t, err, &verr)
	_, err = f.auth.Register(ctx, &dto.RegisterRequest{Email: "invalid", Password: "long-enough", Name: "A"})
	assert.ErrorAs(t, err, &verr)
	_, err = f.auth.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "long-enough"})
	assert.ErrorAs(t, err, &verr)
}

func TestAuth_RegisterStripsMarkup(t *testing.T) {
	f := newFixture(t)
	resp, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "senha-forte-1",
		Name:     "<b>Ana</b> Lima",
		Phone:    " <i>11 99999-0000</i> ",
		City:     "<a href=\"x\">Osasco</a>",
	})
	require.NoError(t, err)

	stored, err := f.store.Users().FindByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", stored.Name)
	assert.Equal(t, "11 99999-0000", stored.Phone)
	assert.Equal(t, "Osasco", stored.City)

	_, err = f.auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "b@example.com", Password: "senha-forte-1", Name: "<p></p>",
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAuth_AccessTokenClaims(t *testing.T) {
	f := newFixture(t)
	resp := register(t, f.auth, "claims@example.com")

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "claims@example.com", claims["email"])
	assert.Equal(t, "CLIENT", claims["role"])
	assert.Equal(t, "HS256", token.Method.Alg())
}

func TestAuth_RefreshRotates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := register(t, f.auth, "rotate@example.com")

	next, err := f.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, next.RefreshToken)

	_, err = f.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: ""})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth_RefreshExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := register(t, f.auth, "expired@example.com")

	f.auth.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err := f.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := register(t, f.auth, "logout@example.com")

	require.NoError(t, f.auth.Logout(ctx, &dto.LogoutRequest{RefreshToken: resp.RefreshToken}))
	_, err := f.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth_MeAndAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := register(t, f.auth, "someone@example.com")

	me, err := f.auth.Me(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lucas", me.Name)

	_, err = f.auth.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	isAdmin, err := f.auth.IsAdmin(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// promoting an existing account resets its password
	require.NoError(t, f.auth.EnsureAdmin(ctx, "someone@example.com", "admin-pass-1"))
	isAdmin, _ = f.auth.IsAdmin(ctx, resp.User.ID)
	assert.True(t, isAdmin)
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "someone@example.com", Password: "admin-pass-1"})
	assert.NoError(t, err)

	require.NoError(t, f.auth.EnsureAdmin(ctx, "root@example.com", "admin-pass-2"))
	login, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "root@example.com", Password: "admin-pass-2"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, login.User.Role)

	var verr *ValidationError
	assert.ErrorAs(t, f.auth.EnsureAdmin(ctx, "", "x"), &verr)
}
