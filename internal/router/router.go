package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/auspexhq/auspex/internal/config"
	"github.com/auspexhq/auspex/internal/handlers"
	"github.com/auspexhq/auspex/internal/logging"
	"github.com/auspexhq/auspex/internal/middleware"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, cfg config.Config) *handlers.Handler {
	// Create handler instance
	h := handlers.New(logger, cfg.Limits)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.JoinedOrigins(),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: cfg.CORS.JoinedHeaders(),
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Root and health endpoints (no auth required)
	app.Get("/", h.Root)
	app.Get("/api/v1/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key when auth is enabled)
	v1 := app.Group("/api/v1", authMiddleware)

	// Analytics Routes
	v1.Post("/forecast", h.Forecast)
	v1.Post("/detect-anomalies", h.DetectAnomalies)
	v1.Get("/models", h.Models)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Auspex API",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, cfg)

	return app
}
