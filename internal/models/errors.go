package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application error taxonomy. Validation-style failures
// (duplicates, empty text) are recoverable per-request outcomes; none of
// these are fatal to the process.
const (
	CodeDuplicateUsername    = "DUPLICATE_USERNAME"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeSelfFollow           = "SELF_FOLLOW"
	CodeEmptyText            = "EMPTY_TEXT"
	CodeNotFound             = "NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInternal             = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// AppError represents a custom application error. Field names the form field
// the error belongs to, so signup/profile handlers can surface duplicate
// username and email failures simultaneously.
type AppError struct {
	Code    string
	Message string
	Field   string
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

func NewDuplicateUsernameError() *AppError {
	return &AppError{
		Code:    CodeDuplicateUsername,
		Message: "Username is taken.",
		Field:   "username",
	}
}

func NewDuplicateEmailError() *AppError {
	return &AppError{
		Code:    CodeDuplicateEmail,
		Message: "Email is taken.",
		Field:   "email",
	}
}

// NewAuthenticationFailedError deliberately carries a single uniform message
// so callers cannot tell an unknown username from a wrong password.
func NewAuthenticationFailedError() *AppError {
	return &AppError{
		Code:    CodeAuthenticationFailed,
		Message: "Invalid credentials",
	}
}

func NewSelfFollowError(verb string) *AppError {
	return &AppError{
		Code:    CodeSelfFollow,
		Message: fmt.Sprintf("You cannot %s yourself.", verb),
	}
}

func NewEmptyTextError() *AppError {
	return &AppError{
		Code:    CodeEmptyText,
		Message: "Message text is required",
		Field:   "text",
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HasCode reports whether err or anything it wraps (including joined errors)
// is an AppError with the given code.
func HasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if ae, ok := err.(*AppError); ok && ae.Code == code {
		return true
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return HasCode(x.Unwrap(), code)
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if HasCode(e, code) {
				return true
			}
		}
	}
	return false
}

// appErrors collects every AppError reachable from err.
func appErrors(err error) []*AppError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AppError); ok {
		return []*AppError{ae}
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return appErrors(x.Unwrap())
	case interface{ Unwrap() []error }:
		var out []*AppError
		for _, e := range x.Unwrap() {
			out = append(out, appErrors(e)...)
		}
		return out
	}
	return nil
}

// StatusFor maps an application error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case HasCode(err, CodeNotFound):
		return fiber.StatusNotFound
	case HasCode(err, CodeAuthenticationFailed):
		return fiber.StatusUnauthorized
	case HasCode(err, CodeUnauthorized):
		return fiber.StatusForbidden
	case HasCode(err, CodeDuplicateUsername), HasCode(err, CodeDuplicateEmail):
		return fiber.StatusConflict
	case HasCode(err, CodeSelfFollow), HasCode(err, CodeEmptyText), HasCode(err, CodeValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response. When the error
// carries multiple field-level failures (e.g. both username and email taken
// on signup) they are all reported in the fields map.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	apps := appErrors(err)
	if len(apps) > 0 {
		first := apps[0]
		response = ErrorResponse{
			Error: first.Message,
			Code:  first.Code,
		}
		if first.Err != nil {
			response.Details = first.Err.Error()
		}
		for _, ae := range apps {
			if ae.Field == "" {
				continue
			}
			if response.Fields == nil {
				response.Fields = make(map[string]string)
			}
			response.Fields[ae.Field] = ae.Message
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
