package middleware

import (
	"context"
	"log/slog"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// AdminRequired checks both the token's role claim and the stored role, so a
// demoted admin loses access before the token expires.
func AdminRequired(checker AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if GetRole(c) == models.RoleAdmin {
			ok, err := checker.IsAdmin(c.UserContext(), userID)
			if err != nil {
				slog.Error("admin lookup failed", "user_id", userID, "error", err)
				return fiber.ErrInternalServerError
			}
			if ok {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
