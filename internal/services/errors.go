// Package services provides the business logic layer between the HTTP
// handlers and the analytics core. Services prepare the series, run the
// core computation and map results and errors to response models.
package services

// Error codes returned by the analytics services. Handlers map them to
// HTTP status codes.
const (
	CodeInvalidData    = "INVALID_DATA"
	CodeForecastFailed = "FORECAST_FAILED"
	CodeAnomalyFailed  = "ANOMALY_FAILED"
	CodeInternalError  = "INTERNAL_ERROR"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
