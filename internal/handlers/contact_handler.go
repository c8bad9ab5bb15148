package handlers

import (
	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/metrics"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	contacts *services.ContactService
	metrics  *metrics.Collector
}

func NewContactHandler(contacts *services.ContactService, collector *metrics.Collector) *ContactHandler {
	return &ContactHandler{contacts: contacts, metrics: collector}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	form, err := h.contacts.Submit(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	h.metrics.RecordContact()
	return c.JSON(dto.ContactResponse{Message: "Message sent successfully", ID: form.ID.String()})
}
