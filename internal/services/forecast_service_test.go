package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/auspexhq/auspex/internal/analytics"
	"github.com/auspexhq/auspex/internal/logging"
	"github.com/auspexhq/auspex/internal/models"
)

// dailyData builds n wire data points starting 2024-01-01 with values from fn
func dailyData(n int, fn func(i int) float64) []models.DataPoint {
	points := make([]models.DataPoint, n)
	for i := range points {
		points[i] = models.DataPoint{
			Date:  fmt.Sprintf("2024-01-%02d", i+1),
			Value: fn(i),
		}
	}
	return points
}

func TestNewForecastService(t *testing.T) {
	service := NewForecastService(logging.NewDevelopment())

	if service == nil {
		t.Fatal("Expected non-nil ForecastService")
		return
	}
	if service.logger == nil {
		t.Error("Expected non-nil logger")
	}
}

func TestForecastService_Execute_LinearSeries(t *testing.T) {
	service := NewForecastService(logging.NewDevelopment())

	req := &models.ForecastRequest{
		Data:             dailyData(20, func(i int) float64 { return 10 + 2*float64(i) }),
		Horizon:          5,
		Model:            "ets",
		ConfidenceLevels: []int{95},
	}

	resp, err := service.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.ModelUsed != "AutoETS" {
		t.Errorf("Expected model 'AutoETS', got '%s'", resp.ModelUsed)
	}

	if len(resp.Forecast) != 5 {
		t.Fatalf("Expected 5 forecast points, got %d", len(resp.Forecast))
	}

	// The series is exactly linear, so the forecast continues the line
	for h, p := range resp.Forecast {
		want := 10 + 2*float64(20+h)
		if math.Abs(p.Value-want) > 1e-6 {
			t.Errorf("Forecast step %d: expected %.6f, got %.6f", h, want, p.Value)
		}
	}

	if resp.Forecast[0].Date != "2024-01-21" {
		t.Errorf("Expected first forecast date 2024-01-21, got %s", resp.Forecast[0].Date)
	}
	if resp.Forecast[4].Date != "2024-01-25" {
		t.Errorf("Expected last forecast date 2024-01-25, got %s", resp.Forecast[4].Date)
	}

	upper, ok := resp.ConfidenceIntervals["upper_95"]
	if !ok {
		t.Fatal("Expected upper_95 interval")
	}
	lower, ok := resp.ConfidenceIntervals["lower_95"]
	if !ok {
		t.Fatal("Expected lower_95 interval")
	}
	if len(upper) != 5 || len(lower) != 5 {
		t.Errorf("Expected interval length 5, got upper=%d lower=%d", len(upper), len(lower))
	}
	for h := range upper {
		if lower[h] > resp.Forecast[h].Value || upper[h] < resp.Forecast[h].Value {
			t.Errorf("Step %d: point %.4f outside band [%.4f, %.4f]",
				h, resp.Forecast[h].Value, lower[h], upper[h])
		}
	}

	if resp.Metrics.AIC != nil || resp.Metrics.BIC != nil || resp.Metrics.MAPE != nil {
		t.Error("Expected nil AIC/BIC/MAPE metrics")
	}
	if resp.Metrics.ComputationTimeMs < 0 {
		t.Errorf("Expected non-negative computation time, got %f", resp.Metrics.ComputationTimeMs)
	}
}

func TestForecastService_Execute_ModelDispatch(t *testing.T) {
	service := NewForecastService(logging.NewDevelopment())

	tests := []struct {
		model     string
		wantModel string
	}{
		{"auto", "AutoARIMA"},
		{"arima", "AutoARIMA"},
		{"ets", "AutoETS"},
		{"theta", "AutoTheta"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			req := &models.ForecastRequest{
				Data: dailyData(30, func(i int) float64 {
					return 50 + 0.5*float64(i) + 3*math.Sin(2*math.Pi*float64(i)/7)
				}),
				Horizon:          7,
				Model:            tt.model,
				SeasonLength:     7,
				ConfidenceLevels: []int{95},
			}

			resp, err := service.Execute(context.Background(), req)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if resp.ModelUsed != tt.wantModel {
				t.Errorf("Expected model '%s', got '%s'", tt.wantModel, resp.ModelUsed)
			}
		})
	}
}

func TestForecastService_Execute_InvalidDate(t *testing.T) {
	service := NewForecastService(logging.NewDevelopment())

	data := dailyData(12, func(i int) float64 { return 100 })
	data[5].Date = "not-a-date"

	req := &models.ForecastRequest{
		Data:             data,
		Horizon:          5,
		Model:            "ets",
		ConfidenceLevels: []int{95},
	}

	_, err := service.Execute(context.Background(), req)
	if err == nil {
		t.Fatal("Expected error for unparseable date")
	}

	serviceErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected *ServiceError, got %T", err)
	}
	if serviceErr.Code != CodeInvalidData {
		t.Errorf("Expected code '%s', got '%s'", CodeInvalidData, serviceErr.Code)
	}
}

func TestForecastService_Execute_DuplicateDates(t *testing.T) {
	service := NewForecastService(logging.NewDevelopment())

	data := dailyData(12, func(i int) float64 { return 100 })
	data[7].Date = data[3].Date

	req := &models.ForecastRequest{
		Data:             data,
		Horizon:          5,
		Model:            "ets",
		ConfidenceLevels: []int{95},
	}

	_, err := service.Execute(context.Background(), req)
	if err == nil {
		t.Fatal("Expected error for duplicate dates")
	}

	serviceErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected *ServiceError, got %T", err)
	}
	if serviceErr.Code != CodeInvalidData {
		t.Errorf("Expected code '%s', got '%s'", CodeInvalidData, serviceErr.Code)
	}
}

func TestForecastService_Execute_UncomputableLevelOmitted(t *testing.T) {
	service := NewForecastService(logging.NewDevelopment())

	// The service passes levels through; the engine silently drops any level
	// without a finite critical value.
	req := &models.ForecastRequest{
		Data:             dailyData(15, func(i int) float64 { return 50 + float64(i%4) }),
		Horizon:          3,
		Model:            "ets",
		ConfidenceLevels: []int{95, 150},
	}

	resp, err := service.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(resp.ConfidenceIntervals) != 2 {
		t.Errorf("Expected 2 interval columns (upper_95/lower_95), got %d", len(resp.ConfidenceIntervals))
	}
	if _, ok := resp.ConfidenceIntervals["upper_150"]; ok {
		t.Error("Level 150 should be omitted")
	}
}

func TestMapCoreError(t *testing.T) {
	dataErr := mapCoreError(analytics.NewDataError("bad input"), CodeForecastFailed)
	if dataErr.Code != CodeInvalidData {
		t.Errorf("Expected '%s', got '%s'", CodeInvalidData, dataErr.Code)
	}

	compErr := mapCoreError(analytics.NewComputationError("fit degenerated"), CodeForecastFailed)
	if compErr.Code != CodeForecastFailed {
		t.Errorf("Expected '%s', got '%s'", CodeForecastFailed, compErr.Code)
	}

	internalErr := mapCoreError(fmt.Errorf("boom"), CodeForecastFailed)
	if internalErr.Code != CodeInternalError {
		t.Errorf("Expected '%s', got '%s'", CodeInternalError, internalErr.Code)
	}
	if internalErr.Details["error"] != "boom" {
		t.Errorf("Expected wrapped cause in details, got %v", internalErr.Details)
	}
}
