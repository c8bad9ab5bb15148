package routes

import (
	"time"

	"github.com/buscaserv/buscaserv-api/internal/config"
	"github.com/buscaserv/buscaserv-api/internal/handlers"
	"github.com/buscaserv/buscaserv-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Health        *handlers.HealthHandler
	ClientRecords *handlers.ClientRecordHandler
	Providers     *handlers.ProviderHandler
	Contact       *handlers.ContactHandler
	Catalog       *handlers.CatalogHandler
	Settings      *handlers.SettingsHandler
}

// Guards are the checks the protected groups need from the service layer.
type Guards struct {
	Admin    middleware.AdminChecker
	Provider middleware.ProviderResolver
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers, g Guards) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Public catalog and search
	api.Get("/config", h.Settings.GetConfig)
	api.Get("/cities", h.Catalog.PublicCities)
	api.Get("/categories", h.Catalog.PublicCategories)
	api.Get("/banners", h.Catalog.PublicBanners)
	api.Get("/ads", h.Catalog.PublicAds)
	api.Post("/ads/:id/click", h.Catalog.AdClick)
	api.Get("/providers", h.Providers.Search)
	api.Get("/providers/:id", h.Providers.PublicProfile)

	// Contact and auth share the stricter limit: 10 req/min per IP
	strict := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/contact", strict, h.Contact.Submit)

	auth := api.Group("/auth")
	auth.Post("/register", strict, h.Auth.Register)
	auth.Post("/login", strict, h.Auth.Login)
	auth.Post("/refresh", strict, h.Auth.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	auth.Get("/me", middleware.JWTProtected(cfg), h.Auth.Me)

	// Provider onboarding and profile (JWT required)
	api.Post("/provider/register", middleware.JWTProtected(cfg), h.Providers.Register)
	api.Get("/provider/profile", middleware.JWTProtected(cfg), h.Providers.GetProfile)
	api.Put("/provider/profile", middleware.JWTProtected(cfg), h.Providers.UpdateProfile)

	// Provider-scoped records (JWT + provider profile)
	owned := []fiber.Handler{middleware.JWTProtected(cfg), middleware.ProviderRequired(g.Provider)}
	api.Get("/client-records", append(owned, h.ClientRecords.List)...)
	api.Post("/client-records", append(owned, h.ClientRecords.Create)...)
	api.Put("/client-records/:id", append(owned, h.ClientRecords.Update)...)
	api.Delete("/client-records/:id", append(owned, h.ClientRecords.Delete)...)
	api.Get("/dashboard-stats", append(owned, h.ClientRecords.Dashboard)...)

	// Admin (JWT + ADMIN role)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(g.Admin))

	admin.Get("/cities", h.Catalog.ListCities)
	admin.Post("/cities", h.Catalog.CreateCity)
	admin.Put("/cities/:id", h.Catalog.UpdateCity)
	admin.Delete("/cities/:id", h.Catalog.DeleteCity)

	admin.Get("/categories", h.Catalog.ListCategories)
	admin.Post("/categories", h.Catalog.CreateCategory)
	admin.Put("/categories/:id", h.Catalog.UpdateCategory)
	admin.Delete("/categories/:id", h.Catalog.DeleteCategory)

	admin.Get("/banners", h.Catalog.ListBanners)
	admin.Post("/banners", h.Catalog.CreateBanner)
	admin.Put("/banners/:id", h.Catalog.UpdateBanner)
	admin.Delete("/banners/:id", h.Catalog.DeleteBanner)

	admin.Get("/ads", h.Catalog.ListAds)
	admin.Post("/ads", h.Catalog.CreateAd)
	admin.Put("/ads/:id", h.Catalog.UpdateAd)
	admin.Delete("/ads/:id", h.Catalog.DeleteAd)

	admin.Get("/config", h.Settings.ListConfig)
	admin.Put("/config/:key", h.Settings.SetConfigKey)
	admin.Delete("/config/:key", h.Settings.DeleteConfigKey)
}
