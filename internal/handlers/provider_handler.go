package handlers

import (
	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/metrics"
	"github.com/buscaserv/buscaserv-api/internal/middleware"
	"github.com/buscaserv/buscaserv-api/internal/search"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProviderHandler struct {
	providers *services.ProviderService
	metrics   *metrics.Collector
}

func NewProviderHandler(providers *services.ProviderService, collector *metrics.Collector) *ProviderHandler {
	return &ProviderHandler{providers: providers, metrics: collector}
}

func (h *ProviderHandler) Register(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return fail(c, services.ErrUnauthorized)
	}

	var req dto.RegisterProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.providers.Register(c.UserContext(), userID, &req)
	if err != nil {
		return fail(c, err)
	}
	h.metrics.RecordRegistration()
	return c.JSON(resp)
}

func (h *ProviderHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return fail(c, services.ErrUnauthorized)
	}

	profile, err := h.providers.GetProfile(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

func (h *ProviderHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return fail(c, services.ErrUnauthorized)
	}

	var req dto.UpdateProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	profile, err := h.providers.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// Search is public.
func (h *ProviderHandler) Search(c *fiber.Ctx) error {
	var q search.Query
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	resp, err := h.providers.Search(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	h.metrics.RecordSearch(resp.Total)
	return c.JSON(resp)
}

func (h *ProviderHandler) PublicProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, services.ErrProviderNotFound)
	}

	profile, err := h.providers.PublicProfile(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}
