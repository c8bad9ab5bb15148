package middleware

import (
	"errors"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	userKey     = "user"
	providerKey = "provider"
)

var ErrNoSession = errors.New("no authenticated session")

func claims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals(userKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	return mc, ok
}

// GetUserID extracts the user UUID from the JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	mc, ok := claims(c)
	if !ok {
		return uuid.Nil, ErrNoSession
	}
	sub, ok := mc["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// GetRole returns the role claim. It may be stale until the token is refreshed.
func GetRole(c *fiber.Ctx) models.Role {
	mc, ok := claims(c)
	if !ok {
		return ""
	}
	role, _ := mc["role"].(string)
	return models.Role(role)
}

// GetProvider returns the profile stored by ProviderRequired.
func GetProvider(c *fiber.Ctx) *models.ServiceProvider {
	p, _ := c.Locals(providerKey).(*models.ServiceProvider)
	return p
}
