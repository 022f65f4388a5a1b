// Package errors defines the error taxonomy returned by the dashboard API.
// Handlers translate AppError values into {"error":{"code","message"}} bodies;
// the wrapped internal cause is logged but never sent to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError is a client-safe error with a stable code and HTTP status.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code so errors.Is(err, ErrInvalidWeek) works on
// wrapped copies of a sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap copies sentinel and attaches internal as the cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage copies sentinel with a custom client-facing message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Request errors.
var (
	ErrInvalidInput    = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidWeek     = &AppError{Code: "INVALID_WEEK", Message: "Week must be a non-negative integer", StatusCode: http.StatusBadRequest}
	ErrInvalidCategory = &AppError{Code: "INVALID_CATEGORY", Message: "Category must be one of all, increase, decrease, stable", StatusCode: http.StatusBadRequest}
	ErrInvalidFormat   = &AppError{Code: "INVALID_FORMAT", Message: "Format must be xlsx or csv", StatusCode: http.StatusBadRequest}
	ErrUnauthorized    = &AppError{Code: "UNAUTHORIZED", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrReloadDisabled  = &AppError{Code: "RELOAD_DISABLED", Message: "Reload endpoint is not configured", StatusCode: http.StatusServiceUnavailable}
)

// Lookup errors.
var (
	ErrNotFound        = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrProductNotFound = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found", StatusCode: http.StatusNotFound}
)

// Data errors.
var (
	ErrLoadFailed     = &AppError{Code: "LOAD_FAILED", Message: "Price data could not be loaded", StatusCode: http.StatusBadGateway}
	ErrExportFailed   = &AppError{Code: "EXPORT_FAILED", Message: "Export could not be generated", StatusCode: http.StatusInternalServerError}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
