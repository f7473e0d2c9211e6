package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"tracker-client/internal/errors"
	"tracker-client/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return stderrors.New(eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Type == errors.ErrorTypeHTTP {
		if fields := fieldMessages(appErr.Data); fields != "" {
			return fields
		}
	}
	return errors.GetUserMessage(err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound) || errors.StatusCode(err) == 404
}

// IsUnauthorizedError checks if the server rejected the credential
func (eh *ErrorHandler) IsUnauthorizedError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeUnauthorized)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// fieldMessages flattens a {"field": ["message", ...]} error body into
// "field: message" lines, sorted by field.
func fieldMessages(data []byte) string {
	var fields map[string][]string
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return ""
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+": "+strings.Join(fields[name], "; "))
	}
	return strings.Join(lines, "\n")
}
