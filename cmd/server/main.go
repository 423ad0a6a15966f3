package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps/avatarforge"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps/hymnal"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps/sigil"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps/silence"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/config"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/database"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/events"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/handlers"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/logging"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/middleware"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/routes"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	// Realm registry
	registry, err := realm.LoadFromFile(cfg.RealmsConfigPath)
	if err != nil {
		slog.Error("failed to load realm registry", "path", cfg.RealmsConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("realm registry loaded", "realms", len(registry.All()))

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Metrics and event bus
	metricsRegistry := prometheus.NewRegistry()
	bus := events.NewBus(metricsRegistry, slog.Default())
	startChronicle(bus)

	// Services
	authService := services.NewAuthService(database.DB, cfg)

	// Register plugins (all 4 apps)
	plugins := []apps.Plugin{
		avatarforge.New(),
		hymnal.New(),
		sigil.New(),
		silence.New(),
	}

	// Migrate plugin models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, registry)
	healthHandler := handlers.NewHealthHandler(registry)
	configHandler := handlers.NewRealmConfigHandler(database.DB, registry)

	// Seed default realm config values
	slog.Info("seeding realm config defaults")
	configHandler.SeedDefaults(registry.ToMap())

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(middleware.RealmMiddleware(registry))

	// Routes
	deps := apps.Deps{DB: database.DB, Cfg: cfg, Bus: bus, Registry: registry}
	routes.Setup(app, cfg, database.DB, authHandler, healthHandler, configHandler, metricsRegistry, plugins, deps)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// startChronicle records every ceremonial event in the structured log.
func startChronicle(bus *events.Bus) {
	for _, t := range []events.EventType{
		events.AvatarForged,
		events.AvatarRankUpdated,
		events.HymnComposed,
		events.HymnPerformed,
		events.SigilIssued,
		events.SilenceProclaimed,
	} {
		eventType := t
		bus.SubscribeFunc(eventType, func(evt events.Event) {
			slog.Info("chronicle", "event", string(eventType), "data", evt.Data)
		})
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
