package analytics

import "math"

// Validate is a pure gate over raw input: it rejects a series that violates
// any structural invariant and transforms nothing. It fails when the series
// has fewer than 2 points, when any value is NaN or infinite, when any date
// fails to parse, or when two points share the same parsed date.
//
// Minimum lengths beyond 2 (forecasting and anomaly detection require more)
// are enforced by the transport layer before the core is invoked.
func Validate(points []RawPoint) error {
	if len(points) < 2 {
		return NewDataError("data must contain at least 2 points, got %d", len(points))
	}

	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return NewDataError("invalid value at %s: %v", p.Date, p.Value)
		}
	}

	seen := make(map[int64]string, len(points))
	for _, p := range points {
		t, err := ParseDate(p.Date)
		if err != nil {
			return NewDataError("invalid date format: %s", p.Date)
		}
		key := t.UnixNano()
		if prev, dup := seen[key]; dup {
			return NewDataError("duplicate dates found in data: %s and %s", prev, p.Date)
		}
		seen[key] = p.Date
	}

	return nil
}
