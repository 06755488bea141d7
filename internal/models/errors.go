package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ExposeErrorDetails controls whether ErrorResponse.Details carries the
// underlying error text. The server disables it in production so internal
// failures surface only a generic message.
var ExposeErrorDetails = true

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Error codes carried by AppError and surfaced in API responses.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeUnsupportedType = "UNSUPPORTED_MEDIA_TYPE"
	CodeTooLarge        = "PAYLOAD_TOO_LARGE"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewUnsupportedTypeError marks an upload rejected for its MIME type.
func NewUnsupportedTypeError(mimeType string) *AppError {
	return &AppError{
		Code:    CodeUnsupportedType,
		Message: fmt.Sprintf("Unsupported file type %q, only image files are allowed", mimeType),
	}
}

// NewTooLargeError marks an upload rejected for exceeding the size limit.
func NewTooLargeError(maxBytes int64) *AppError {
	return &AppError{
		Code:    CodeTooLarge,
		Message: fmt.Sprintf("File too large (max %dMB)", maxBytes/(1024*1024)),
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil && ExposeErrorDetails {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
