package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/courtlog/internal/api"
	"github.com/terraincognita07/courtlog/internal/config"
	"github.com/terraincognita07/courtlog/internal/db"
	"github.com/terraincognita07/courtlog/internal/i18n"
	"github.com/terraincognita07/courtlog/internal/logger"
	"github.com/terraincognita07/courtlog/internal/storage"
	"github.com/terraincognita07/courtlog/internal/templates"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configFile)
		},
	}
}

func runServe(ctx context.Context, configFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logWriter := logger.Init(cfg.Log)

	location := loadLocation(cfg.Server.TimeZone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	store, err := storage.New(ctx, cfg.Upload)
	if err != nil {
		return fmt.Errorf("upload storage init failed: %w", err)
	}

	app, err := newApp(cfg, database, store, location, logWriter)
	if err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("courtlog listening",
		"port", cfg.Server.Port,
		"db", cfg.Database.Path,
		"tz", location.String(),
		"upload_backend", cfg.Upload.Backend,
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	slog.Info("courtlog stopped")
	return nil
}

// newApp wires middleware, uploads and routes onto a fresh fiber app.
func newApp(cfg *config.Config, database *gorm.DB, store storage.Store, location *time.Location, logWriter io.Writer) (*fiber.App, error) {
	i18nManager, err := i18n.NewManager(cfg.Server.DefaultLanguage, i18n.Locales())
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.Server.SecretKey, templates.Files, location, i18nManager, cfg.Server.CookieSecure, store)
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "courtlog",
		DisableStartupMessage: true,
		BodyLimit:             api.MaxRequestBodyBytes,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: logWriter}))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.Server.CookieSecure, api.SkipCSRF, handler.CSRFError)))

	if local, ok := store.(*storage.LocalStore); ok {
		app.Static(local.PublicPrefix(), local.Dir(), fiber.Static{ByteRange: true})
	}

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, nil
}

func csrfMiddlewareConfig(cookieSecure bool, next func(*fiber.Ctx) bool, errorHandler fiber.ErrorHandler) csrf.Config {
	return csrf.Config{
		Next:           next,
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "courtlog_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		ErrorHandler:   errorHandler,
	}
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("invalid time zone, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}
