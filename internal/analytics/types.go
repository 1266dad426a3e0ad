// Package analytics provides the shared types and the data-preparation
// pipeline for time-series analytics: input validation, canonicalization,
// frequency inference and seasonal defaults. The forecast and anomaly
// subpackages consume the canonical series produced here.
package analytics

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// RawPoint is a single observation as received from the transport layer:
// an unparsed date string and its numeric value.
type RawPoint struct {
	Date  string
	Value float64
}

// TimeSeriesPoint represents a single time-series data point with time and value.
// This is the common type used across all analytics packages (forecast, anomaly, etc.)
type TimeSeriesPoint struct {
	Time  time.Time
	Value float64
}

// TimeSeriesData represents a collection of time-series data points
type TimeSeriesData []TimeSeriesPoint

// Values extracts just the values from the time series
func (ts TimeSeriesData) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}
	return values
}

// Times extracts just the times from the time series
func (ts TimeSeriesData) Times() []time.Time {
	times := make([]time.Time, len(ts))
	for i, p := range ts {
		times[i] = p.Time
	}
	return times
}

// Len returns the number of data points
func (ts TimeSeriesData) Len() int {
	return len(ts)
}

// Mean calculates the mean of all values
func (ts TimeSeriesData) Mean() float64 {
	if len(ts) == 0 {
		return 0
	}
	return stat.Mean(ts.Values(), nil)
}

// StdDev calculates the sample standard deviation of all values
func (ts TimeSeriesData) StdDev() float64 {
	if len(ts) < 2 {
		return 0
	}
	return stat.StdDev(ts.Values(), nil)
}
