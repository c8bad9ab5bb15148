package handlers

import (
	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/middleware"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ClientRecordHandler serves routes mounted behind ProviderRequired.
type ClientRecordHandler struct {
	records   *services.ClientRecordService
	dashboard *services.DashboardService
}

func NewClientRecordHandler(records *services.ClientRecordService, dashboard *services.DashboardService) *ClientRecordHandler {
	return &ClientRecordHandler{records: records, dashboard: dashboard}
}

func (h *ClientRecordHandler) List(c *fiber.Ctx) error {
	provider := middleware.GetProvider(c)
	records, err := h.records.List(c.UserContext(), provider.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(records)
}

func (h *ClientRecordHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClientRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	provider := middleware.GetProvider(c)
	record, err := h.records.Create(c.UserContext(), provider.ID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *ClientRecordHandler) Update(c *fiber.Ctx) error {
	// a malformed id cannot name an owned record
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, services.ErrRecordNotFound)
	}

	var req dto.UpdateClientRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	provider := middleware.GetProvider(c)
	record, err := h.records.Update(c.UserContext(), provider.ID, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(record)
}

func (h *ClientRecordHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, services.ErrRecordNotFound)
	}

	provider := middleware.GetProvider(c)
	if err := h.records.Delete(c.UserContext(), provider.ID, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Record deleted successfully"})
}

func (h *ClientRecordHandler) Dashboard(c *fiber.Ctx) error {
	provider := middleware.GetProvider(c)
	stats, err := h.dashboard.Compute(c.UserContext(), provider.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
