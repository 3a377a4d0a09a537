// Package errors provides custom error types for the Nivesh API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
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

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Master data errors.
var (
	ErrBankNotFound            = &AppError{Code: "BANK_NOT_FOUND", Message: "Bank not found", StatusCode: http.StatusNotFound}
	ErrStateNotFound           = &AppError{Code: "STATE_NOT_FOUND", Message: "State not found", StatusCode: http.StatusNotFound}
	ErrCityNotFound            = &AppError{Code: "CITY_NOT_FOUND", Message: "City not found", StatusCode: http.StatusNotFound}
	ErrPropertyTypeNotFound    = &AppError{Code: "PROPERTY_TYPE_NOT_FOUND", Message: "Property type not found", StatusCode: http.StatusNotFound}
	ErrSubPropertyTypeNotFound = &AppError{Code: "SUB_PROPERTY_TYPE_NOT_FOUND", Message: "Sub property type not found", StatusCode: http.StatusNotFound}
	ErrAreaPriceNotFound       = &AppError{Code: "AREA_PRICE_NOT_FOUND", Message: "No area price found for this area, city and state", StatusCode: http.StatusNotFound}
	ErrGoldRateMissing         = &AppError{Code: "GOLD_RATE_MISSING", Message: "No gold rate snapshot is available yet", StatusCode: http.StatusNotFound}
)

// Fixed deposit errors.
var (
	ErrFixedDepositNotFound = &AppError{Code: "FIXED_DEPOSIT_NOT_FOUND", Message: "Fixed deposit not found", StatusCode: http.StatusNotFound}
)

// Gold errors.
var (
	ErrGoldInvestmentNotFound = &AppError{Code: "GOLD_INVESTMENT_NOT_FOUND", Message: "Gold investment not found", StatusCode: http.StatusNotFound}
)

// Real estate errors.
var (
	ErrRealEstateNotFound = &AppError{Code: "REAL_ESTATE_NOT_FOUND", Message: "Real estate investment not found", StatusCode: http.StatusNotFound}
)

// Stock errors.
var (
	ErrStockPositionNotFound = &AppError{Code: "STOCK_POSITION_NOT_FOUND", Message: "Stock position not found", StatusCode: http.StatusNotFound}
	ErrInsufficientStock     = &AppError{Code: "INSUFFICIENT_STOCK", Message: "Insufficient stock quantity for this sale", StatusCode: http.StatusBadRequest}
)
