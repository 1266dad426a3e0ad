package models

import "time"

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// RootResponse describes the service and its endpoints
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// ForecastMetrics represents forecast quality metrics. AIC, BIC and MAPE are
// not computed by the current models and serialize as null.
type ForecastMetrics struct {
	AIC               *float64 `json:"aic"`
	BIC               *float64 `json:"bic"`
	MAPE              *float64 `json:"mape"`
	ComputationTimeMs float64  `json:"computation_time_ms"`
}

// ForecastResponse represents forecast response
type ForecastResponse struct {
	Forecast            []DataPoint          `json:"forecast"`
	ConfidenceIntervals map[string][]float64 `json:"confidenceIntervals"`
	ModelUsed           string               `json:"modelUsed"`
	Metrics             ForecastMetrics      `json:"metrics"`
}

// ExpectedRange represents the expected value range for a data point
type ExpectedRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// AnomalyPoint represents a single anomalous data point
type AnomalyPoint struct {
	Date          string        `json:"date"`
	Value         float64       `json:"value"`
	Severity      string        `json:"severity"`
	ExpectedRange ExpectedRange `json:"expectedRange"`
	Deviation     float64       `json:"deviation"`
}

// ConfidenceBand represents the expected range for a single point
type ConfidenceBand struct {
	Date  string  `json:"date"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// AnomalyResponse represents anomaly detection response
type AnomalyResponse struct {
	Anomalies         []AnomalyPoint   `json:"anomalies"`
	TotalPoints       int              `json:"totalPoints"`
	AnomalyCount      int              `json:"anomalyCount"`
	AnomalyRate       float64          `json:"anomalyRate"`
	ConfidenceBands   []ConfidenceBand `json:"confidenceBands,omitempty"`
	ModelUsed         string           `json:"modelUsed"`
	Sensitivity       string           `json:"sensitivity"`
	ComputationTimeMs float64          `json:"computationTimeMs"`
}

// ModelInfo describes a single forecasting model
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Speed       string `json:"speed"`
	Accuracy    string `json:"accuracy"`
	BestFor     string `json:"best_for,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

// ModelsResponse represents the model listing response
type ModelsResponse struct {
	Models      []ModelInfo `json:"models"`
	Recommended string      `json:"recommended"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// FormatDate renders an observation time for the wire: plain date when the
// instant is midnight UTC, RFC 3339 otherwise.
func FormatDate(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format("2006-01-02")
	}
	return u.Format(time.RFC3339)
}
