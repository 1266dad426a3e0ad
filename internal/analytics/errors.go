package analytics

import "fmt"

// DataError reports input that violates a structural invariant of a time
// series: too few points, non-finite values, unparseable dates or duplicate
// dates. A DataError is always caller-fixable and is surfaced as a
// client-side failure by the transport layer.
type DataError struct {
	Message string
}

func (e *DataError) Error() string {
	return e.Message
}

// NewDataError creates a DataError with a formatted message
func NewDataError(format string, args ...interface{}) *DataError {
	return &DataError{Message: fmt.Sprintf(format, args...)}
}

// ComputationError reports a statistical computation that failed on
// structurally valid input, for example a numerically degenerate fit.
// Surfaced as a server-side failure; the core never retries.
type ComputationError struct {
	Message string
	Cause   error
}

func (e *ComputationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}

// NewComputationError creates a ComputationError with a formatted message
func NewComputationError(format string, args ...interface{}) *ComputationError {
	return &ComputationError{Message: fmt.Sprintf(format, args...)}
}

// WrapComputationError creates a ComputationError around an underlying cause
func WrapComputationError(cause error, format string, args ...interface{}) *ComputationError {
	return &ComputationError{Message: fmt.Sprintf(format, args...), Cause: cause}
}
