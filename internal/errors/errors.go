package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultMessage is used when neither the server nor the transport supplied one.
const DefaultMessage = "An error occurred"

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates an error for a request that exceeded its deadline
func NewTimeoutError(operation string, timeout interface{}, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// NewTransportError creates an error for a request that received no response
func NewTransportError(operation string, cause error) *AppError {
	message := DefaultMessage
	if cause != nil && cause.Error() != "" {
		message = cause.Error()
	}
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: message,
		Code:    "TRANSPORT_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewHTTPError creates an error for a non-success HTTP response
func NewHTTPError(status int, message string, data []byte, cause error) *AppError {
	code := "HTTP_ERROR"
	if status == http.StatusNotFound {
		code = "NOT_FOUND"
	}
	return &AppError{
		Type:    ErrorTypeHTTP,
		Message: message,
		Code:    code,
		Status:  status,
		Data:    data,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewUnauthorizedError creates an error for a 401 response
func NewUnauthorizedError(message string, data []byte, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
		Code:    "UNAUTHORIZED",
		Status:  http.StatusUnauthorized,
		Data:    data,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// StatusCode returns the HTTP status carried by the error, or zero
func StatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Status
	}
	return 0
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeHTTP, ErrorTypeTransport:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A local storage error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The request timed out. Please try again."
		case ErrorTypeUnauthorized:
			return "Your session has expired. Please log in again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // user errors
		case ErrorTypeUnauthorized:
			return false // answered by the login redirect
		default:
			return true
		}
	}
	return true
}
