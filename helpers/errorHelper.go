package helpers

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrValidation         ErrorKind = "VALIDATION_ERROR"
	ErrPermission         ErrorKind = "PERMISSION_ERROR"
	ErrNotFound           ErrorKind = "NOT_FOUND"
	ErrConflict           ErrorKind = "CONFLICT"
	ErrQuotaExceeded      ErrorKind = "QUOTA_EXCEEDED"
	ErrTransition         ErrorKind = "TRANSITION_ERROR"
	ErrStorageUnavailable ErrorKind = "STORAGE_UNAVAILABLE"
	ErrInternal           ErrorKind = "INTERNAL_ERROR"
)

// AppError is the one error type handlers report. Quota and permission
// messages must stay distinguishable: the fix for one is a plan upgrade, for
// the other it is access the caller does not have.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to its response code. Missing-authentication 401s
// never reach here; the auth middleware answers those itself.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrPermission:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict, ErrTransition:
		return http.StatusConflict
	case ErrQuotaExceeded:
		return http.StatusPaymentRequired
	case ErrStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
