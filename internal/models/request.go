package models

import "fmt"

// Request defaults applied by the handlers before validation.
const (
	DefaultHorizon         = 30
	DefaultModel           = "auto"
	DefaultConfidenceLevel = 95
	DefaultSensitivity     = "medium"
)

// validModels is the closed set of model selectors accepted on the wire.
var validModels = map[string]bool{
	"auto":  true,
	"arima": true,
	"ets":   true,
	"theta": true,
}

// validSensitivities is the closed set of sensitivity selectors accepted on the wire.
var validSensitivities = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

// DataPoint represents a single time series observation on the wire
type DataPoint struct {
	Date  string  `json:"date" validate:"required"`
	Value float64 `json:"value"`
}

// ForecastRequest represents a forecast request
type ForecastRequest struct {
	Data             []DataPoint `json:"data" validate:"required,min=2"`
	Horizon          int         `json:"horizon" validate:"min=1"`
	Model            string      `json:"model" validate:"omitempty,oneof=auto arima ets theta"`
	SeasonLength     int         `json:"seasonLength,omitempty" validate:"omitempty,gt=1"`
	ConfidenceLevels []int       `json:"confidenceLevels,omitempty"`
}

// ApplyDefaults fills unset optional fields with their documented defaults
func (r *ForecastRequest) ApplyDefaults() {
	if r.Horizon == 0 {
		r.Horizon = DefaultHorizon
	}
	if r.Model == "" {
		r.Model = DefaultModel
	}
	if len(r.ConfidenceLevels) == 0 {
		r.ConfidenceLevels = []int{DefaultConfidenceLevel}
	}
}

// Validate checks the request shape against the configured limits.
// Structural validation of the data itself (parseable dates, finite values,
// no duplicates) happens in the analytics core.
func (r *ForecastRequest) Validate(minPoints, maxHorizon int) error {
	if len(r.Data) < minPoints {
		return fmt.Errorf("data must contain at least %d points for forecasting, got %d", minPoints, len(r.Data))
	}

	if r.Horizon < 1 || r.Horizon > maxHorizon {
		return fmt.Errorf("horizon must be between 1 and %d, got %d", maxHorizon, r.Horizon)
	}

	if !validModels[r.Model] {
		return fmt.Errorf("invalid model %q: must be one of auto, arima, ets, theta", r.Model)
	}

	if r.SeasonLength != 0 && r.SeasonLength < 2 {
		return fmt.Errorf("seasonLength must be greater than 1, got %d", r.SeasonLength)
	}

	for _, level := range r.ConfidenceLevels {
		if level <= 0 || level >= 100 {
			return fmt.Errorf("confidence levels must be between 0 and 100 exclusive, got %d", level)
		}
	}

	return nil
}

// AnomalyRequest represents an anomaly detection request
type AnomalyRequest struct {
	Data         []DataPoint `json:"data" validate:"required,min=2"`
	Sensitivity  string      `json:"sensitivity" validate:"omitempty,oneof=low medium high"`
	SeasonLength int         `json:"seasonLength,omitempty" validate:"omitempty,gt=1"`
	// ShowConfidenceBands defaults to true; a pointer distinguishes an
	// explicit false from an absent field.
	ShowConfidenceBands *bool `json:"showConfidenceBands,omitempty"`
}

// ApplyDefaults fills unset optional fields with their documented defaults
func (r *AnomalyRequest) ApplyDefaults() {
	if r.Sensitivity == "" {
		r.Sensitivity = DefaultSensitivity
	}
}

// IncludeBands reports whether the response should carry confidence bands
func (r *AnomalyRequest) IncludeBands() bool {
	return r.ShowConfidenceBands == nil || *r.ShowConfidenceBands
}

// Validate checks the request shape against the configured limits
func (r *AnomalyRequest) Validate(minPoints int) error {
	if len(r.Data) < minPoints {
		return fmt.Errorf("data must contain at least %d points for anomaly detection, got %d", minPoints, len(r.Data))
	}

	if !validSensitivities[r.Sensitivity] {
		return fmt.Errorf("invalid sensitivity %q: must be one of low, medium, high", r.Sensitivity)
	}

	if r.SeasonLength != 0 && r.SeasonLength < 2 {
		return fmt.Errorf("seasonLength must be greater than 1, got %d", r.SeasonLength)
	}

	return nil
}
