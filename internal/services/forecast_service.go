package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auspexhq/auspex/internal/analytics"
	"github.com/auspexhq/auspex/internal/analytics/forecast"
	"github.com/auspexhq/auspex/internal/logging"
	"github.com/auspexhq/auspex/internal/models"
)

// ForecastService handles forecasting business logic. It is stateless:
// one value constructed at startup serves all requests concurrently,
// with all per-request state kept on the stack.
type ForecastService struct {
	logger *logging.Logger
	engine forecast.Engine
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger) *ForecastService {
	return &ForecastService{logger: logger}
}

// Execute prepares the request's series, fits the selected model and maps
// the forecast to the response shape. The reported computation time covers
// validation and preparation as well as the fit.
func (s *ForecastService) Execute(ctx context.Context, req *models.ForecastRequest) (*models.ForecastResponse, error) {
	startExec := time.Now()

	series, err := analytics.Prepare(rawPoints(req.Data))
	if err != nil {
		return nil, mapCoreError(err, CodeForecastFailed)
	}

	// Unknown selectors were rejected at the transport layer; the core
	// treats anything unrecognized as ets.
	model, _ := forecast.ParseModel(req.Model)

	result, err := s.engine.Forecast(series, forecast.Request{
		Horizon:      req.Horizon,
		Model:        model,
		SeasonLength: series.ResolveSeasonLength(req.SeasonLength),
		Levels:       req.ConfidenceLevels,
	})
	if err != nil {
		return nil, mapCoreError(err, CodeForecastFailed)
	}

	elapsed := time.Since(startExec)

	points := make([]models.DataPoint, len(result.Points))
	for i, p := range result.Points {
		points[i] = models.DataPoint{Date: models.FormatDate(p.Time), Value: p.Value}
	}

	intervals := make(map[string][]float64, 2*result.Intervals.Len())
	for _, level := range result.Intervals.Levels() {
		band, ok := result.Intervals.Band(level)
		if !ok {
			continue
		}
		intervals[fmt.Sprintf("upper_%d", level)] = band.Upper
		intervals[fmt.Sprintf("lower_%d", level)] = band.Lower
	}

	s.logger.WithContext(ctx).Info("Forecast completed",
		"points", series.Len(),
		"frequency", series.Frequency.String(),
		"horizon", req.Horizon,
		"model_used", result.ModelUsed,
		"levels", result.Intervals.Len(),
		"latency_ms", elapsed.Milliseconds(),
	)

	return &models.ForecastResponse{
		Forecast:            points,
		ConfidenceIntervals: intervals,
		ModelUsed:           result.ModelUsed,
		Metrics: models.ForecastMetrics{
			ComputationTimeMs: elapsed.Seconds() * 1000,
		},
	}, nil
}

// rawPoints converts wire data points into the core's raw input form
func rawPoints(data []models.DataPoint) []analytics.RawPoint {
	points := make([]analytics.RawPoint, len(data))
	for i, p := range data {
		points[i] = analytics.RawPoint{Date: p.Date, Value: p.Value}
	}
	return points
}

// mapCoreError converts a core analytics error into a ServiceError.
// Structural input problems map to INVALID_DATA; computation failures map
// to the operation's failure code.
func mapCoreError(err error, failureCode string) *ServiceError {
	var dataErr *analytics.DataError
	if errors.As(err, &dataErr) {
		return NewServiceError(CodeInvalidData, dataErr.Error())
	}

	var compErr *analytics.ComputationError
	if errors.As(err, &compErr) {
		return NewServiceError(failureCode, compErr.Error())
	}

	return NewServiceErrorWithDetails(CodeInternalError, "unexpected analytics failure",
		map[string]interface{}{"error": err.Error()})
}
