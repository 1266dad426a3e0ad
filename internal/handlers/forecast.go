package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auspexhq/auspex/internal/models"
	"github.com/auspexhq/auspex/internal/services"
)

// Forecast handles POST forecast requests
// POST /api/v1/forecast
func (h *Handler) Forecast(c *fiber.Ctx) error {
	var req models.ForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	req.ApplyDefaults()

	if err := req.Validate(h.limits.MinForecastPoints, h.limits.MaxHorizon); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
	}

	result, err := h.forecastService.Execute(c.UserContext(), &req)
	if err != nil {
		return h.serviceError(c, err, services.CodeForecastFailed)
	}

	return c.JSON(result)
}

// serviceError maps service layer errors onto HTTP responses. Data problems
// reported by the analytics core surface as 400s, everything else as 500s.
func (h *Handler) serviceError(c *fiber.Ctx, err error, fallbackCode string) error {
	if svcErr, ok := err.(*services.ServiceError); ok {
		status := fiber.StatusInternalServerError
		if svcErr.Code == services.CodeInvalidData {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			},
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    fallbackCode,
			Message: err.Error(),
		},
	})
}
