package handlers

import (
	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the public pickers and the admin CRUD screens.
// Admin list endpoints include inactive rows.
type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func catalogID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *CatalogHandler) deleted(c *fiber.Ctx, err error) error {
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Deleted successfully"})
}

// Public

func (h *CatalogHandler) PublicCities(c *fiber.Ctx) error {
	cities, err := h.catalog.ListCities(c.UserContext(), true)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cities)
}

func (h *CatalogHandler) PublicCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext(), true)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) PublicBanners(c *fiber.Ctx) error {
	cityID := c.QueryInt("cidadeId", 0)
	if cityID < 0 {
		return badRequest(c, "Invalid cidadeId")
	}
	banners, err := h.catalog.ListBanners(c.UserContext(), uint(cityID), true)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(banners)
}

func (h *CatalogHandler) PublicAds(c *fiber.Ctx) error {
	ads, err := h.catalog.ListAds(c.UserContext(), c.Query("cidade"), true)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ads)
}

func (h *CatalogHandler) AdClick(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	if err := h.catalog.RecordAdClick(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cities

func (h *CatalogHandler) ListCities(c *fiber.Ctx) error {
	cities, err := h.catalog.ListCities(c.UserContext(), false)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cities)
}

func (h *CatalogHandler) CreateCity(c *fiber.Ctx) error {
	var req dto.CityRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	city, err := h.catalog.CreateCity(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(city)
}

func (h *CatalogHandler) UpdateCity(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	var req dto.CityRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	city, err := h.catalog.UpdateCity(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(city)
}

func (h *CatalogHandler) DeleteCity(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	return h.deleted(c, h.catalog.DeleteCity(c.UserContext(), id))
}

// Categories

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext(), false)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	category, err := h.catalog.CreateCategory(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	category, err := h.catalog.UpdateCategory(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	return h.deleted(c, h.catalog.DeleteCategory(c.UserContext(), id))
}

// Banners

func (h *CatalogHandler) ListBanners(c *fiber.Ctx) error {
	banners, err := h.catalog.ListBanners(c.UserContext(), 0, false)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(banners)
}

func (h *CatalogHandler) CreateBanner(c *fiber.Ctx) error {
	var req dto.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	banner, err := h.catalog.CreateBanner(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(banner)
}

func (h *CatalogHandler) UpdateBanner(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	var req dto.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	banner, err := h.catalog.UpdateBanner(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(banner)
}

func (h *CatalogHandler) DeleteBanner(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	return h.deleted(c, h.catalog.DeleteBanner(c.UserContext(), id))
}

// Advertisements

func (h *CatalogHandler) ListAds(c *fiber.Ctx) error {
	ads, err := h.catalog.ListAds(c.UserContext(), "", false)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ads)
}

func (h *CatalogHandler) CreateAd(c *fiber.Ctx) error {
	var req dto.AdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	ad, err := h.catalog.CreateAd(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ad)
}

func (h *CatalogHandler) UpdateAd(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	var req dto.AdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	ad, err := h.catalog.UpdateAd(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ad)
}

func (h *CatalogHandler) DeleteAd(c *fiber.Ctx) error {
	id, ok := catalogID(c)
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	return h.deleted(c, h.catalog.DeleteAd(c.UserContext(), id))
}
