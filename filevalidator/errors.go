package filevalidator

import (
	"errors"
	"fmt"
)

// ValidationErrorType represents different types of validation errors
type ValidationErrorType string

const (
	ErrorTypeUnacceptedType ValidationErrorType = "type"
	ErrorTypeSize           ValidationErrorType = "size"
	ErrorTypePreview        ValidationErrorType = "preview"
)

// ErrNoPreviewer is the cause of a preview rejection when previews are
// enabled but no generator was configured.
var ErrNoPreviewer = errors.New("no preview generator configured")

// ValidationError is the reason a single file was rejected.
// It never escapes a batch; it is carried by the Rejected entry.
type ValidationError struct {
	// Type categorizes the failure (type, size, preview).
	Type ValidationErrorType

	// Message is the human-readable error description.
	Message string

	// Filename is the name of the rejected file.
	Filename string

	// Err is the underlying cause, set for preview read failures.
	Err error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s validation error: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s validation error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError
func NewValidationError(errType ValidationErrorType, filename, message string) *ValidationError {
	return &ValidationError{
		Type:     errType,
		Message:  message,
		Filename: filename,
	}
}

func newPreviewError(filename string, cause error) *ValidationError {
	return &ValidationError{
		Type:     ErrorTypePreview,
		Message:  fmt.Sprintf("failed to read %s, no preview image created", filename),
		Filename: filename,
		Err:      cause,
	}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsErrorOfType checks if an error is a ValidationError of the specified type
func IsErrorOfType(err error, errType ValidationErrorType) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Type == errType
	}
	return false
}

// GetErrorType returns the type of a ValidationError, or empty string if not a ValidationError
func GetErrorType(err error) ValidationErrorType {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Type
	}
	return ""
}
