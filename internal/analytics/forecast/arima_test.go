package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/auspexhq/auspex/internal/analytics"
)

func TestDifference(t *testing.T) {
	got := difference([]float64{1, 3, 6, 10})
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Index %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if difference([]float64{5}) != nil {
		t.Error("Expected nil for a single value")
	}
}

func TestSeasonalDifference(t *testing.T) {
	got := seasonalDifference([]float64{1, 2, 3, 4, 5, 6}, 3)
	want := []float64{3, 3, 3}
	if len(got) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Index %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if seasonalDifference([]float64{1, 2, 3}, 3) != nil {
		t.Error("Expected nil when the series is no longer than the lag")
	}
}

func TestDifferenceLadder(t *testing.T) {
	// A strong trend differences once into a constant, then stops because
	// the variance cannot drop further.
	ladder := differenceLadder(linearValues(20, 10, 2))
	if len(ladder) != 2 {
		t.Fatalf("Expected 2 ladder stages for trending data, got %d", len(ladder))
	}
	for i, v := range ladder[1] {
		if v != 2 {
			t.Errorf("Stage 1 index %d: expected 2, got %v", i, v)
		}
	}

	// Alternating values get noisier when differenced, so no stage is added.
	alternating := make([]float64, 20)
	for i := range alternating {
		alternating[i] = 5 + float64(i%2)
	}
	if got := differenceLadder(alternating); len(got) != 1 {
		t.Errorf("Expected 1 ladder stage for alternating data, got %d", len(got))
	}
}

func TestLevinsonDurbin(t *testing.T) {
	// AR(1) autocorrelation decays geometrically; the recursion recovers
	// the coefficient and leaves higher orders at zero.
	got := levinsonDurbin([]float64{0.6, 0.36}, 2)
	if len(got) != 2 {
		t.Fatalf("Expected 2 coefficients, got %d", len(got))
	}
	if math.Abs(got[0]-0.6) > 1e-10 {
		t.Errorf("Expected phi1=0.6, got %v", got[0])
	}
	if math.Abs(got[1]) > 1e-10 {
		t.Errorf("Expected phi2=0, got %v", got[1])
	}

	if levinsonDurbin(nil, 2) != nil {
		t.Error("Expected nil for empty autocorrelations")
	}
	if levinsonDurbin([]float64{0.5}, 0) != nil {
		t.Error("Expected nil for order 0")
	}
}

func TestEstimateAR(t *testing.T) {
	if estimateAR([]float64{1, 2, 3}, 0) != nil {
		t.Error("Expected nil for order 0")
	}
	if estimateAR([]float64{1, 2}, 3) != nil {
		t.Error("Expected nil when the series is shorter than the order")
	}

	values := make([]float64, 50)
	for i := range values {
		values[i] = math.Sin(float64(i) / 3)
	}
	coeffs := estimateAR(values, 2)
	if len(coeffs) != 2 {
		t.Fatalf("Expected 2 coefficients, got %d", len(coeffs))
	}
	for i, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Errorf("Coefficient %d is not finite: %v", i, c)
		}
	}
}

func TestARMAFittedZeroOrder(t *testing.T) {
	values := []float64{1, -2, 3, -4}
	fitted, residuals := armaFitted(values, nil, nil)

	for i := range values {
		if fitted[i] != 0 {
			t.Errorf("Fitted %d: expected 0, got %v", i, fitted[i])
		}
		if residuals[i] != values[i] {
			t.Errorf("Residual %d: expected %v, got %v", i, values[i], residuals[i])
		}
	}
}

func TestResidualStd(t *testing.T) {
	residuals := []float64{0, 0, 2, -2, 2, -2}
	got := residualStd(residuals, 2)
	want := math.Sqrt(16.0 / 3.0)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if residualStd([]float64{1, 2}, 5) != 0 {
		t.Error("Expected 0 when start is past the residuals")
	}
	if residualStd([]float64{1}, 0) != 0 {
		t.Error("Expected 0 for fewer than 2 residuals")
	}
}

func TestSearchOrderConstantSeries(t *testing.T) {
	centered := make([]float64, 12)
	best := searchOrder(centered)
	if best == nil {
		t.Fatal("Expected a candidate for a centered constant series")
	}
	if best.p != 0 || best.q != 0 {
		t.Errorf("Expected order (0,0) for a constant series, got (%d,%d)", best.p, best.q)
	}
}

func TestAutoARIMAConstantSeries(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 50
	}

	pred, err := autoARIMA{}.Forecast(values, 1, 6)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if len(pred.Mean) != 6 {
		t.Fatalf("Expected 6 forecasts, got %d", len(pred.Mean))
	}
	for h, v := range pred.Mean {
		if math.Abs(v-50) > 1e-9 {
			t.Errorf("Step %d: expected 50, got %v", h, v)
		}
		if pred.Sigma[h] != 0 {
			t.Errorf("Step %d: expected zero sigma for a perfect fit, got %v", h, pred.Sigma[h])
		}
	}
}

func TestAutoARIMALinearTrend(t *testing.T) {
	// A pure trend differences to a constant, so the integrated forecast
	// continues the line exactly.
	values := linearValues(24, 10, 2)

	pred, err := autoARIMA{}.Forecast(values, 1, 5)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	last := values[len(values)-1]
	for h, v := range pred.Mean {
		expected := last + 2*float64(h+1)
		if math.Abs(v-expected) > 1e-9 {
			t.Errorf("Step %d: expected %v, got %v", h, expected, v)
		}
	}
}

func TestAutoARIMASeasonalSeries(t *testing.T) {
	// Weekly cycle plus trend: the seasonal difference removes both, and
	// undoing it reproduces the cycle in the forecast.
	values := make([]float64, 35)
	for i := range values {
		values[i] = 50 + 0.5*float64(i) + 3*math.Sin(2*math.Pi*float64(i)/7)
	}

	pred, err := autoARIMA{}.Forecast(values, 7, 7)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	n := len(values)
	for h, v := range pred.Mean {
		i := n + h
		expected := 50 + 0.5*float64(i) + 3*math.Sin(2*math.Pi*float64(i)/7)
		if math.Abs(v-expected) > 1e-6 {
			t.Errorf("Step %d: expected %.6f, got %.6f", h, expected, v)
		}
	}
}

func TestAutoARIMATooShort(t *testing.T) {
	_, err := autoARIMA{}.Forecast([]float64{1, 2, 3, 4}, 1, 3)
	if err == nil {
		t.Fatal("Expected error for a series too short to difference and fit")
	}
	var compErr *analytics.ComputationError
	if !errors.As(err, &compErr) {
		t.Errorf("Expected *analytics.ComputationError, got %T", err)
	}
}
