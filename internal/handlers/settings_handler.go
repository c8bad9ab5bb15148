package handlers

import (
	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetConfig returns the public site configuration as a typed key/value map.
func (h *SettingsHandler) GetConfig(c *fiber.Ctx) error {
	result, err := h.settings.Public(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// ListConfig returns the raw rows with versions (admin only).
func (h *SettingsHandler) ListConfig(c *fiber.Ctx) error {
	rows, err := h.settings.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// SetConfigKey sets or updates a key (admin only).
func (h *SettingsHandler) SetConfigKey(c *fiber.Ctx) error {
	var req dto.SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	setting, err := h.settings.Set(c.UserContext(), c.Params("key"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Config updated successfully",
		"config":  setting,
	})
}

// DeleteConfigKey deletes a key (admin only).
func (h *SettingsHandler) DeleteConfigKey(c *fiber.Ctx) error {
	if err := h.settings.Delete(c.UserContext(), c.Params("key")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Config deleted successfully",
	})
}
