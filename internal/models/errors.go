package models

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application error taxonomy.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorItem is a single itemized message in a validation error response.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
	Items   []ErrorItem
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

// NewValidationError builds an itemized validation error; the response body
// is rendered as {"errors":[{"msg":...},...]}.
func NewValidationError(msgs ...string) *AppError {
	items := make([]ErrorItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, ErrorItem{Msg: m})
	}
	message := ""
	if len(msgs) > 0 {
		message = msgs[0]
	}
	return &AppError{Code: CodeValidation, Message: message, Items: items}
}

// NewBadRequestError builds a plain {"msg":...} 400 error.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message}
}

// NewUnauthorizedError builds a missing/invalid-token error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError builds an authenticated-but-not-owner error. The wire
// status stays 401 to preserve the original API contract.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewNotFoundError builds a missing resource or sub-entry error.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewInvalidCredentialsError builds the deliberately uniform login failure.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid credentials.",
		Items:   []ErrorItem{{Msg: "Invalid credentials."}},
	}
}

// NewInternalError wraps an unexpected failure. The wrapped error is logged
// server-side; clients only see the generic message.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Server Error", Err: err}
}

// RespondWithError serializes an error with the given HTTP status. Validation
// and credential failures render as an itemized errors array; everything else
// as a single {"msg":...} body.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = NewInternalError(err)
	}

	// The wrapped cause never reaches the client, so record it here.
	if appErr.Code == CodeInternal {
		cause := appErr.Err
		if cause == nil {
			cause = appErr
		}
		slog.Error("internal error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", cause.Error()),
		)
	}

	if len(appErr.Items) > 0 {
		return c.Status(status).JSON(fiber.Map{"errors": appErr.Items})
	}
	return c.Status(status).JSON(fiber.Map{"msg": appErr.Message})
}
