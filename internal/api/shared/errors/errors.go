package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-nft-registry/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodePaymentRequired  ErrorCode = "payment_required"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewPaymentRequiredError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodePaymentRequired,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomainError classifies a registry error into an HTTP status and API error.
// Errors outside the domain taxonomy map to 500 without details.
func FromDomainError(err error) (int, *APIError) {
	switch {
	case errors.Is(err, domain.ErrTokenAlreadyExists):
		return http.StatusConflict, NewConflictError("Token already exists", err.Error())
	case errors.Is(err, domain.ErrTokenNotFound):
		return http.StatusNotFound, NewNotFoundError("Token not found", err.Error())
	case errors.Is(err, domain.ErrMissingCaller):
		return http.StatusUnauthorized, NewUnauthorizedError("Caller identity is required")
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, NewForbiddenError("Caller is not the token owner", err.Error())
	case errors.Is(err, domain.ErrInsufficientDeposit):
		return http.StatusPaymentRequired, NewPaymentRequiredError("Insufficient deposit for storage", err.Error())
	case errors.Is(err, domain.ErrInvalidAccountID),
		errors.Is(err, domain.ErrInvalidBalance),
		errors.Is(err, domain.ErrDepositNotAccepted):
		return http.StatusBadRequest, NewBadRequestError("Invalid request", err.Error())
	case errors.Is(err, domain.ErrInvalidCollectionMetadata):
		return http.StatusUnprocessableEntity, NewValidationError(err.Error())
	default:
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}
}
