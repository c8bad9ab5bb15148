package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/config"
	"github.com/buscaserv/buscaserv-api/internal/database"
	"github.com/buscaserv/buscaserv-api/internal/logging"
	"github.com/buscaserv/buscaserv-api/internal/seed"
	"github.com/buscaserv/buscaserv-api/internal/server"
	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "buscaserv",
	Short: "BuscaServ marketplace API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.LoadDotenv(); err != nil {
			fmt.Fprintln(os.Stderr, "Error loading .env file, skipping:", err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		slog.Info("migration completed", "tables", len(database.Models()))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data and the admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
		}

		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = cfg.SeedFile
		}
		file, err := seed.LoadFromFile(path)
		if err != nil {
			return err
		}

		svc := server.NewServices(cfg, server.GormRepositories(db))
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		_, err = seed.NewSeeder(svc.Catalog, svc.Settings, svc.Auth).Apply(ctx, file, cfg.AdminEmail, cfg.AdminPassword)
		return err
	},
}

func init() {
	seedCmd.Flags().String("file", "", "seed JSON file (defaults to SEED_FILE, then the built-in data)")
	seedCmd.Flags().Bool("migrate", false, "run migrations before seeding")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// bootstrap loads config, installs the stdout logger and connects to the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.DBPassword == "" {
		return nil, nil, fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func serve() error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(logging.GormWriter(db), 5*time.Second)
	logging.Setup(cfg.LogLevel, pgLogHandler)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	svc := server.NewServices(cfg, server.GormRepositories(db))

	// Settings defaults are cheap and keep /api/config populated on a fresh database.
	if err := svc.Settings.SeedDefaults(context.Background()); err != nil {
		slog.Warn("seeding default settings failed", "error", err.Error())
	}

	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Warn("sentry init failed", "error", err.Error())
		} else {
			sentryEnabled = true
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := server.New(cfg, svc, server.Options{
		Ping:      func() error { return database.Ping(db) },
		Registry:  registry,
		AccessLog: true,
		Sentry:    sentryEnabled,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	var runErr error
	select {
	case <-quit:
		slog.Info("shutting down server...")
	case runErr = <-listenErr:
		if runErr != nil {
			runErr = fmt.Errorf("server failed to start: %w", runErr)
		}
	}

	close(cleanupDone)
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Warn("server shutdown error", "error", err.Error())
	}
	pgLogHandler.Stop()
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}

	slog.Info("server stopped")
	return runErr
}
