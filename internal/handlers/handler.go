package handlers

import (
	"github.com/auspexhq/auspex/internal/config"
	"github.com/auspexhq/auspex/internal/logging"
	"github.com/auspexhq/auspex/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	limits config.LimitsConfig
	// Services
	forecastService *services.ForecastService
	anomalyService  *services.AnomalyService
}

// New creates a new handler instance
func New(logger *logging.Logger, limits config.LimitsConfig) *Handler {
	forecastService := services.NewForecastService(logger)
	anomalyService := services.NewAnomalyService(logger)

	return &Handler{
		logger:          logger,
		limits:          limits,
		forecastService: forecastService,
		anomalyService:  anomalyService,
	}
}
