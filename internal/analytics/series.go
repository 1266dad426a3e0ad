package analytics

import (
	"fmt"
	"sort"
	"time"
)

// dateLayouts are the accepted input date formats. Layouts without a zone
// are interpreted as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a date string in one of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Series is a canonical prepared time series: points sorted ascending by
// time, dates unique, with the inferred observation frequency. All downstream
// computation (forecasting, anomaly detection) operates on a Series.
type Series struct {
	Data      TimeSeriesData
	Frequency Frequency
}

// Prepare validates raw points and converts them into a canonical Series.
// The sort is stable; ties cannot occur because Validate rejects duplicate
// dates. Returns a *DataError for invalid input.
func Prepare(points []RawPoint) (*Series, error) {
	if err := Validate(points); err != nil {
		return nil, err
	}

	data := make(TimeSeriesData, len(points))
	for i, p := range points {
		t, err := ParseDate(p.Date)
		if err != nil {
			return nil, NewDataError("invalid date format: %s", p.Date)
		}
		data[i] = TimeSeriesPoint{Time: t, Value: p.Value}
	}

	sort.SliceStable(data, func(i, j int) bool {
		return data[i].Time.Before(data[j].Time)
	})

	return &Series{
		Data:      data,
		Frequency: InferFrequency(data.Times()),
	}, nil
}

// Len returns the number of points in the series
func (s *Series) Len() int {
	return s.Data.Len()
}

// Values returns the value sequence in time order
func (s *Series) Values() []float64 {
	return s.Data.Values()
}

// Times returns the observation times in ascending order
func (s *Series) Times() []time.Time {
	return s.Data.Times()
}

// LastTime returns the time of the final observation.
func (s *Series) LastTime() time.Time {
	if len(s.Data) == 0 {
		return time.Time{}
	}
	return s.Data[len(s.Data)-1].Time
}

// ResolveSeasonLength returns the caller-supplied season length when one was
// given, otherwise the default for the inferred frequency.
func (s *Series) ResolveSeasonLength(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.Frequency.DefaultSeasonLength()
}
