package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/auspexhq/auspex/internal/models"
)

// ServiceName identifies this API in health payloads.
const ServiceName = "auspex-api"

// Version is the API version reported by health and root endpoints.
const Version = "1.0.0"

// Health handles health check requests
// GET /api/v1/health
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Service:   ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}

// Root handles requests to the API root
// GET /
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(models.RootResponse{
		Message: "Auspex Forecasting API",
		Version: Version,
		Endpoints: map[string]string{
			"forecast":  "/api/v1/forecast",
			"anomalies": "/api/v1/detect-anomalies",
			"models":    "/api/v1/models",
			"health":    "/api/v1/health",
		},
	})
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
