package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auspexhq/auspex/internal/models"
	"github.com/auspexhq/auspex/internal/services"
)

// DetectAnomalies handles POST anomaly detection requests
// POST /api/v1/detect-anomalies
func (h *Handler) DetectAnomalies(c *fiber.Ctx) error {
	var req models.AnomalyRequest
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

	if err := req.Validate(h.limits.MinAnomalyPoints); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
	}

	result, err := h.anomalyService.Execute(c.UserContext(), &req)
	if err != nil {
		return h.serviceError(c, err, services.CodeAnomalyFailed)
	}

	return c.JSON(result)
}
