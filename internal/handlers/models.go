package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auspexhq/auspex/internal/models"
)

// Models handles model listing requests
// GET /api/v1/models
func (h *Handler) Models(c *fiber.Ctx) error {
	return c.JSON(models.ModelsResponse{
		Models: []models.ModelInfo{
			{
				ID:          "auto",
				Name:        "Auto (Best)",
				Description: "Automatically selects the best model (currently uses AutoARIMA)",
				Speed:       "fast",
				Accuracy:    "high",
				Default:     true,
			},
			{
				ID:          "arima",
				Name:        "AutoARIMA",
				Description: "Automated ARIMA model selection",
				Speed:       "fast",
				Accuracy:    "high",
				BestFor:     "Linear trends, stationary data",
			},
			{
				ID:          "ets",
				Name:        "AutoETS",
				Description: "Exponential Smoothing with automated parameter selection",
				Speed:       "very fast",
				Accuracy:    "high",
				BestFor:     "Seasonal patterns, simple trends",
			},
			{
				ID:          "theta",
				Name:        "AutoTheta",
				Description: "Theta method for forecasting",
				Speed:       "very fast",
				Accuracy:    "medium-high",
				BestFor:     "Simple patterns, quick forecasts",
			},
		},
		Recommended: "auto or ets for most use cases",
	})
}
