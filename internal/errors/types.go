package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	// ErrorTypeTransport is a request that never got a response.
	ErrorTypeTransport
	// ErrorTypeHTTP is a 4xx/5xx response other than 401.
	ErrorTypeHTTP
	// ErrorTypeUnauthorized is a 401 response.
	ErrorTypeUnauthorized
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeDatabase:
		return "database"
	case ErrorTypeInvalidInput:
		return "invalid_input"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeTransport:
		return "transport"
	case ErrorTypeHTTP:
		return "http"
	case ErrorTypeUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// AppError is the single error shape handed to callers.
//
// Errors produced by the API client carry the HTTP status (zero when no
// response arrived), the raw response payload and the transport error.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Status  int
	Data    []byte
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	prefix := e.Type.String()
	if e.Status != 0 {
		prefix = fmt.Sprintf("%s %d", prefix, e.Status)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}
