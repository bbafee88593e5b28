package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrInvalidAmount    = new(ErrCodeInvalidAmount, "invalid amount")
	ErrPermissionDenied = new(ErrCodePermissionDenied, "permission denied")
	ErrUnknownIdentity  = new(ErrCodeUnknownIdentity, "unknown identity")
	ErrTransferFailed   = new(ErrCodeTransferFailed, "transfer failed")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrInternal         = new(ErrCodeInternal, "internal error")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrValidation:       http.StatusBadRequest,
		ErrInvalidOperation: http.StatusBadRequest,
		ErrInvalidAmount:    http.StatusBadRequest,
		ErrPermissionDenied: http.StatusForbidden,
		ErrUnknownIdentity:  http.StatusNotFound,
		ErrTransferFailed:   http.StatusPaymentRequired,
		ErrAlreadyExists:    http.StatusConflict,
		ErrInternal:         http.StatusInternalServerError,
	}
)

const (
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeInvalidAmount    = "invalid_amount"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeUnknownIdentity  = "unknown_identity"
	ErrCodeTransferFailed   = "transfer_failed"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeInternal         = "internal_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsInvalidAmount checks if an error is an invalid amount error
func IsInvalidAmount(err error) bool {
	return errors.Is(err, ErrInvalidAmount)
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsUnknownIdentity checks if an error is an unknown identity error
func IsUnknownIdentity(err error) bool {
	return errors.Is(err, ErrUnknownIdentity)
}

// IsTransferFailed checks if an error is a transfer failed error
func IsTransferFailed(err error) bool {
	return errors.Is(err, ErrTransferFailed)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
