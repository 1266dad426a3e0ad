package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// makePoints builds n sequential daily data points
func makePoints(n int) []DataPoint {
	points := make([]DataPoint, n)
	for i := range points {
		points[i] = DataPoint{
			Date:  fmt.Sprintf("2024-01-%02d", i+1),
			Value: 100 + float64(i),
		}
	}
	return points
}

func TestForecastRequest_ApplyDefaults(t *testing.T) {
	req := &ForecastRequest{Data: makePoints(10)}
	req.ApplyDefaults()

	assert.Equal(t, DefaultHorizon, req.Horizon)
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, []int{DefaultConfidenceLevel}, req.ConfidenceLevels)
}

func TestForecastRequest_ApplyDefaultsKeepsExplicitValues(t *testing.T) {
	req := &ForecastRequest{
		Data:             makePoints(10),
		Horizon:          7,
		Model:            "theta",
		ConfidenceLevels: []int{80, 99},
	}
	req.ApplyDefaults()

	assert.Equal(t, 7, req.Horizon)
	assert.Equal(t, "theta", req.Model)
	assert.Equal(t, []int{80, 99}, req.ConfidenceLevels)
}

func TestForecastRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ForecastRequest)
		wantErr string
	}{
		{
			name:    "valid request",
			mutate:  func(r *ForecastRequest) {},
			wantErr: "",
		},
		{
			name: "too few points",
			mutate: func(r *ForecastRequest) {
				r.Data = makePoints(9)
			},
			wantErr: "at least 10 points",
		},
		{
			name: "horizon zero",
			mutate: func(r *ForecastRequest) {
				r.Horizon = 0
			},
			wantErr: "horizon must be between 1 and 365",
		},
		{
			name: "horizon above limit",
			mutate: func(r *ForecastRequest) {
				r.Horizon = 366
			},
			wantErr: "horizon must be between 1 and 365",
		},
		{
			name: "unknown model",
			mutate: func(r *ForecastRequest) {
				r.Model = "prophet"
			},
			wantErr: "invalid model",
		},
		{
			name: "season length of 1",
			mutate: func(r *ForecastRequest) {
				r.SeasonLength = 1
			},
			wantErr: "seasonLength must be greater than 1",
		},
		{
			name: "negative season length",
			mutate: func(r *ForecastRequest) {
				r.SeasonLength = -7
			},
			wantErr: "seasonLength must be greater than 1",
		},
		{
			name: "confidence level zero",
			mutate: func(r *ForecastRequest) {
				r.ConfidenceLevels = []int{0}
			},
			wantErr: "confidence levels must be between 0 and 100",
		},
		{
			name: "confidence level of 100",
			mutate: func(r *ForecastRequest) {
				r.ConfidenceLevels = []int{95, 100}
			},
			wantErr: "confidence levels must be between 0 and 100",
		},
		{
			name: "valid season length and levels",
			mutate: func(r *ForecastRequest) {
				r.SeasonLength = 7
				r.ConfidenceLevels = []int{80, 95, 99}
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ForecastRequest{Data: makePoints(30)}
			req.ApplyDefaults()
			tt.mutate(req)

			err := req.Validate(10, 365)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestAnomalyRequest_ApplyDefaults(t *testing.T) {
	req := &AnomalyRequest{Data: makePoints(20)}
	req.ApplyDefaults()

	assert.Equal(t, DefaultSensitivity, req.Sensitivity)
	assert.True(t, req.IncludeBands())
}

func TestAnomalyRequest_IncludeBands(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name string
		flag *bool
		want bool
	}{
		{"absent defaults to true", nil, true},
		{"explicit true", &yes, true},
		{"explicit false", &no, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AnomalyRequest{ShowConfidenceBands: tt.flag}
			assert.Equal(t, tt.want, req.IncludeBands())
		})
	}
}

func TestAnomalyRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AnomalyRequest)
		wantErr string
	}{
		{
			name:    "valid request",
			mutate:  func(r *AnomalyRequest) {},
			wantErr: "",
		},
		{
			name: "too few points",
			mutate: func(r *AnomalyRequest) {
				r.Data = makePoints(19)
			},
			wantErr: "at least 20 points",
		},
		{
			name: "unknown sensitivity",
			mutate: func(r *AnomalyRequest) {
				r.Sensitivity = "extreme"
			},
			wantErr: "invalid sensitivity",
		},
		{
			name: "season length of 1",
			mutate: func(r *AnomalyRequest) {
				r.SeasonLength = 1
			},
			wantErr: "seasonLength must be greater than 1",
		},
		{
			name: "valid season length",
			mutate: func(r *AnomalyRequest) {
				r.SeasonLength = 12
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AnomalyRequest{Data: makePoints(25)}
			req.ApplyDefaults()
			tt.mutate(req)

			err := req.Validate(20)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
