package services

import (
	"context"
	"math"
	"testing"

	"github.com/auspexhq/auspex/internal/logging"
	"github.com/auspexhq/auspex/internal/models"
)

// spikeData builds n flat points at base with a single spike
func spikeData(n, spikeAt int, base, spike float64) []models.DataPoint {
	return dailyData(n, func(i int) float64 {
		if i == spikeAt {
			return spike
		}
		return base
	})
}

func TestNewAnomalyService(t *testing.T) {
	service := NewAnomalyService(logging.NewDevelopment())

	if service == nil {
		t.Fatal("Expected non-nil AnomalyService")
		return
	}
	if service.logger == nil {
		t.Error("Expected non-nil logger")
	}
}

func TestAnomalyService_Execute_DetectsSpike(t *testing.T) {
	service := NewAnomalyService(logging.NewDevelopment())

	req := &models.AnomalyRequest{
		Data:         spikeData(30, 14, 100, 200),
		Sensitivity:  "medium",
		SeasonLength: 7,
	}

	resp, err := service.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.TotalPoints != 30 {
		t.Errorf("Expected 30 total points, got %d", resp.TotalPoints)
	}
	if resp.AnomalyCount != 1 {
		t.Fatalf("Expected exactly 1 anomaly, got %d", resp.AnomalyCount)
	}
	if math.Abs(resp.AnomalyRate-1.0/30.0) > 1e-10 {
		t.Errorf("Expected anomaly rate 1/30, got %f", resp.AnomalyRate)
	}

	a := resp.Anomalies[0]
	if a.Date != "2024-01-15" {
		t.Errorf("Expected anomaly at 2024-01-15, got %s", a.Date)
	}
	if a.Value != 200 {
		t.Errorf("Expected anomaly value 200, got %f", a.Value)
	}
	if a.Severity != "medium" {
		t.Errorf("Expected severity 'medium', got '%s'", a.Severity)
	}
	if a.ExpectedRange.Lower >= a.ExpectedRange.Upper {
		t.Errorf("Expected lower < upper, got [%f, %f]", a.ExpectedRange.Lower, a.ExpectedRange.Upper)
	}
	if a.Value <= a.ExpectedRange.Upper {
		t.Error("Anomaly value should exceed the expected range")
	}
	if a.Deviation <= 1.5 || a.Deviation > 2 {
		t.Errorf("Expected deviation in (1.5, 2] for this spike, got %f", a.Deviation)
	}

	if resp.ModelUsed != "rolling_zscore" {
		t.Errorf("Expected model 'rolling_zscore', got '%s'", resp.ModelUsed)
	}
	if resp.Sensitivity != "medium" {
		t.Errorf("Expected sensitivity 'medium', got '%s'", resp.Sensitivity)
	}

	if len(resp.ConfidenceBands) != 30 {
		t.Errorf("Expected 30 confidence bands, got %d", len(resp.ConfidenceBands))
	}
	if resp.ConfidenceBands[0].Date != "2024-01-01" {
		t.Errorf("Expected first band at 2024-01-01, got %s", resp.ConfidenceBands[0].Date)
	}
	if resp.ComputationTimeMs < 0 {
		t.Errorf("Expected non-negative computation time, got %f", resp.ComputationTimeMs)
	}
}

func TestAnomalyService_Execute_BandsExcluded(t *testing.T) {
	service := NewAnomalyService(logging.NewDevelopment())

	hide := false
	req := &models.AnomalyRequest{
		Data:                spikeData(30, 14, 100, 200),
		Sensitivity:         "medium",
		ShowConfidenceBands: &hide,
	}

	resp, err := service.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.ConfidenceBands != nil {
		t.Errorf("Expected no confidence bands, got %d", len(resp.ConfidenceBands))
	}
	if resp.AnomalyCount != 1 {
		t.Errorf("Band exclusion must not change detection, got %d anomalies", resp.AnomalyCount)
	}
}

func TestAnomalyService_Execute_ConstantSeries(t *testing.T) {
	service := NewAnomalyService(logging.NewDevelopment())

	req := &models.AnomalyRequest{
		Data:        dailyData(25, func(i int) float64 { return 50 }),
		Sensitivity: "medium",
	}

	resp, err := service.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.AnomalyCount != 0 {
		t.Errorf("Expected no anomalies in constant series, got %d", resp.AnomalyCount)
	}
	if resp.Anomalies == nil {
		t.Error("Anomalies should serialize as an empty list, not null")
	}
	if resp.AnomalyRate != 0 {
		t.Errorf("Expected zero anomaly rate, got %f", resp.AnomalyRate)
	}
	if len(resp.ConfidenceBands) != 25 {
		t.Errorf("Expected 25 bands, got %d", len(resp.ConfidenceBands))
	}
}

func TestAnomalyService_Execute_InvalidDate(t *testing.T) {
	service := NewAnomalyService(logging.NewDevelopment())

	data := spikeData(25, 10, 100, 150)
	data[3].Date = "13/01/2024"

	req := &models.AnomalyRequest{
		Data:        data,
		Sensitivity: "medium",
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

func TestAnomalyService_Execute_SensitivityAffectsCount(t *testing.T) {
	service := NewAnomalyService(logging.NewDevelopment())

	counts := make(map[string]int)
	for _, sensitivity := range []string{"low", "medium", "high"} {
		req := &models.AnomalyRequest{
			Data:         spikeData(30, 14, 100, 200),
			Sensitivity:  sensitivity,
			SeasonLength: 7,
		}

		resp, err := service.Execute(context.Background(), req)
		if err != nil {
			t.Fatalf("Execute(%s) failed: %v", sensitivity, err)
		}
		counts[sensitivity] = resp.AnomalyCount
	}

	// Wider intervals (low) can only flag a subset of what narrower ones
	// (high) flag.
	if counts["low"] > counts["medium"] || counts["medium"] > counts["high"] {
		t.Errorf("Anomaly counts should be monotone in sensitivity: %v", counts)
	}
	if counts["medium"] != 1 {
		t.Errorf("Expected medium sensitivity to flag exactly the spike, got %d", counts["medium"])
	}
}
