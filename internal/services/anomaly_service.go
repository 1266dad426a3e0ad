package services

import (
	"context"
	"time"

	"github.com/auspexhq/auspex/internal/analytics"
	"github.com/auspexhq/auspex/internal/analytics/anomaly"
	"github.com/auspexhq/auspex/internal/logging"
	"github.com/auspexhq/auspex/internal/models"
)

// AnomalyService handles anomaly detection business logic. Like
// ForecastService it is a stateless value shared across requests.
type AnomalyService struct {
	logger   *logging.Logger
	detector anomaly.Detector
}

// NewAnomalyService creates a new AnomalyService
func NewAnomalyService(logger *logging.Logger) *AnomalyService {
	return &AnomalyService{logger: logger}
}

// Execute prepares the request's series, runs the rolling z-score detector
// and maps the classification to the response shape. Confidence bands are
// included only when the request asks for them.
func (s *AnomalyService) Execute(ctx context.Context, req *models.AnomalyRequest) (*models.AnomalyResponse, error) {
	startExec := time.Now()

	series, err := analytics.Prepare(rawPoints(req.Data))
	if err != nil {
		return nil, mapCoreError(err, CodeAnomalyFailed)
	}

	// Unknown selectors were rejected at the transport layer.
	sensitivity, _ := anomaly.ParseSensitivity(req.Sensitivity)

	result, err := s.detector.Detect(series, anomaly.Request{
		Sensitivity:  sensitivity,
		SeasonLength: series.ResolveSeasonLength(req.SeasonLength),
	})
	if err != nil {
		return nil, mapCoreError(err, CodeAnomalyFailed)
	}

	elapsed := time.Since(startExec)

	anomalies := make([]models.AnomalyPoint, len(result.Anomalies))
	for i, a := range result.Anomalies {
		anomalies[i] = models.AnomalyPoint{
			Date:     models.FormatDate(a.Time),
			Value:    a.Value,
			Severity: string(a.Severity),
			ExpectedRange: models.ExpectedRange{
				Lower: a.Lower,
				Upper: a.Upper,
			},
			Deviation: a.Deviation,
		}
	}

	var bands []models.ConfidenceBand
	if req.IncludeBands() {
		bands = make([]models.ConfidenceBand, len(result.Bands))
		for i, b := range result.Bands {
			bands[i] = models.ConfidenceBand{
				Date:  models.FormatDate(b.Time),
				Lower: b.Lower,
				Upper: b.Upper,
			}
		}
	}

	s.logger.WithContext(ctx).Info("Anomaly detection completed",
		"points", result.TotalPoints,
		"frequency", series.Frequency.String(),
		"sensitivity", result.Sensitivity.String(),
		"anomalies", result.AnomalyCount,
		"latency_ms", elapsed.Milliseconds(),
	)

	return &models.AnomalyResponse{
		Anomalies:         anomalies,
		TotalPoints:       result.TotalPoints,
		AnomalyCount:      result.AnomalyCount,
		AnomalyRate:       result.AnomalyRate,
		ConfidenceBands:   bands,
		ModelUsed:         result.Method,
		Sensitivity:       result.Sensitivity.String(),
		ComputationTimeMs: elapsed.Seconds() * 1000,
	}, nil
}
