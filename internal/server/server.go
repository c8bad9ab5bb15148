// Package server assembles the repositories, services and Fiber app.
package server

import (
	"errors"
	"log/slog"

	"github.com/buscaserv/buscaserv-api/internal/config"
	"github.com/buscaserv/buscaserv-api/internal/handlers"
	"github.com/buscaserv/buscaserv-api/internal/metrics"
	"github.com/buscaserv/buscaserv-api/internal/middleware"
	"github.com/buscaserv/buscaserv-api/internal/repository"
	"github.com/buscaserv/buscaserv-api/internal/routes"
	"github.com/buscaserv/buscaserv-api/internal/security"
	"github.com/buscaserv/buscaserv-api/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Repositories struct {
	Users         repository.UserRepository
	RefreshTokens repository.RefreshTokenRepository
	Providers     repository.ProviderRepository
	ClientRecords repository.ClientRecordRepository
	Contacts      repository.ContactRepository
	Cities        repository.CityRepository
	Categories    repository.CategoryRepository
	Banners       repository.BannerRepository
	Ads           repository.AdvertisementRepository
	Settings      repository.SettingRepository
}

// GormRepositories backs every repository with db.
func GormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:         repository.NewUserRepo(db),
		RefreshTokens: repository.NewRefreshTokenRepo(db),
		Providers:     repository.NewProviderRepo(db),
		ClientRecords: repository.NewClientRecordRepo(db),
		Contacts:      repository.NewContactRepo(db),
		Cities:        repository.NewCityRepo(db),
		Categories:    repository.NewCategoryRepo(db),
		Banners:       repository.NewBannerRepo(db),
		Ads:           repository.NewAdvertisementRepo(db),
		Settings:      repository.NewSettingRepo(db),
	}
}

type Services struct {
	Auth          *services.AuthService
	Providers     *services.ProviderService
	ClientRecords *services.ClientRecordService
	Dashboard     *services.DashboardService
	Contact       *services.ContactService
	Catalog       *services.CatalogService
	Settings      *services.SettingsService
}

func NewServices(cfg *config.Config, repos Repositories) *Services {
	san := security.NewTextSanitizer()
	return &Services{
		Auth:          services.NewAuthService(repos.Users, repos.RefreshTokens, san, cfg),
		Providers:     services.NewProviderService(repos.Providers, repos.Categories, san, cfg.SearchMaxResults),
		ClientRecords: services.NewClientRecordService(repos.ClientRecords, san),
		Dashboard:     services.NewDashboardService(repos.ClientRecords),
		Contact:       services.NewContactService(repos.Contacts, san),
		Catalog:       services.NewCatalogService(repos.Cities, repos.Categories, repos.Banners, repos.Ads, san),
		Settings:      services.NewSettingsService(repos.Settings),
	}
}

type Options struct {
	// Ping reports database health for /api/health.
	Ping func() error
	// Registry receives the HTTP metrics; nil disables /metrics.
	Registry *prometheus.Registry
	// AccessLog enables Fiber's access log lines.
	AccessLog bool
	// Sentry attaches the Sentry middleware; the client must already be initialized.
	Sentry bool
}

func New(cfg *config.Config, svc *Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: ErrorHandler,
	})

	if opts.Sentry {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	var collector *metrics.Collector
	if opts.Registry != nil {
		collector = metrics.NewCollector(opts.Registry)
		app.Use(collector.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(opts.Registry)))
	}

	ping := opts.Ping
	if ping == nil {
		ping = func() error { return nil }
	}

	routes.Setup(app, cfg, routes.Handlers{
		Auth:          handlers.NewAuthHandler(svc.Auth),
		Health:        handlers.NewHealthHandler(ping),
		ClientRecords: handlers.NewClientRecordHandler(svc.ClientRecords, svc.Dashboard),
		Providers:     handlers.NewProviderHandler(svc.Providers, collector),
		Contact:       handlers.NewContactHandler(svc.Contact, collector),
		Catalog:       handlers.NewCatalogHandler(svc.Catalog),
		Settings:      handlers.NewSettingsHandler(svc.Settings),
	}, routes.Guards{
		Admin:    svc.Auth,
		Provider: svc.Providers,
	})

	return app
}

// ErrorHandler answers errors that reached Fiber unhandled. Details of 5xx
// errors are logged and reported, never returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error",
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else if sentry.CurrentHub().Client() != nil {
			sentry.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
