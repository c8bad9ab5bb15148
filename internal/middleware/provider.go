package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProviderResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*models.ServiceProvider, error)
}

// ProviderRequired loads the caller's provider profile from the database and
// stores it in locals. The role claim is not consulted; it lags registration.
func ProviderRequired(resolver ProviderResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		provider, err := resolver.Resolve(c.UserContext(), userID)
		switch {
		case err == nil:
			c.Locals(providerKey, provider)
			return c.Next()
		case errors.Is(err, services.ErrProviderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Provider not found",
			})
		case errors.Is(err, services.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		default:
			slog.Error("provider lookup failed", "user_id", userID, "error", err)
			return fiber.ErrInternalServerError
		}
	}
}
