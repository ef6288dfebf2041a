// Package errors provides custom error types for the CashTrackr API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
//
// Messages are the client-facing Spanish strings the product ships with;
// Code is the stable machine-readable identifier used in tests and logs.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & account lifecycle errors.
var (
	ErrUnauthorized        = &AppError{Code: "UNAUTHORIZED", Message: "No Autorizado", StatusCode: http.StatusUnauthorized}
	ErrEmailExists         = &AppError{Code: "EMAIL_EXISTS", Message: "El usuario ya existe", StatusCode: http.StatusConflict}
	ErrInvalidToken        = &AppError{Code: "INVALID_TOKEN", Message: "Token no valido", StatusCode: http.StatusUnauthorized}
	ErrTokenNotFound       = &AppError{Code: "TOKEN_NOT_FOUND", Message: "Token no valido", StatusCode: http.StatusNotFound}
	ErrUserNotFound        = &AppError{Code: "USER_NOT_FOUND", Message: "Usuario no encontrado", StatusCode: http.StatusNotFound}
	ErrAccountNotConfirmed = &AppError{Code: "ACCOUNT_NOT_CONFIRMED", Message: "La cuenta no ha sido confirmada", StatusCode: http.StatusForbidden}
	ErrWrongPassword       = &AppError{Code: "WRONG_PASSWORD", Message: "La contraseña es incorrecta", StatusCode: http.StatusUnauthorized}
	ErrCurrentPassword     = &AppError{Code: "WRONG_CURRENT_PASSWORD", Message: "El password actual es incorrecto", StatusCode: http.StatusForbidden}
	ErrPasswordCheck       = &AppError{Code: "PASSWORD_CHECK_FAILED", Message: "El password actual es incorrecto", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Entrada no valida", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Hubo un error", StatusCode: http.StatusInternalServerError}
)

// Resource ownership errors.
var (
	ErrBudgetNotFound  = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Presupuesto no encontrado", StatusCode: http.StatusNotFound}
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Gasto no encontrado", StatusCode: http.StatusNotFound}
	ErrNotOwner        = &AppError{Code: "NOT_OWNER", Message: "Accion no valida", StatusCode: http.StatusForbidden}
)
