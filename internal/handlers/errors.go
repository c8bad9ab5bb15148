package handlers

import (
	"errors"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps a service error onto an HTTP status. Zero means unmapped.
func statusFor(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrCityNotFound):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrProviderNotFound),
		errors.Is(err, services.ErrRecordNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrVersionConflict),
		errors.Is(err, services.ErrCategoryInUse):
		return fiber.StatusConflict
	}
	return 0
}

// fail writes the JSON error body for known errors. Anything else goes to
// the app error handler, which logs it and answers a bare 500.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == 0 {
		return err
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "Invalid request body")
}
