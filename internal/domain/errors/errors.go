package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrEmailAlreadyExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_EXISTS",
		"Email already in use",
		"",
	)

	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"Unknown role",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrPasswordLoginUnavailable = NewBaseError(
		http.StatusUnauthorized,
		"PASSWORD_LOGIN_UNAVAILABLE",
		"This account has no password; use OTP login",
		"",
	)

	ErrInvalidOTP = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_OTP",
		"Invalid one-time code",
		"",
	)

	ErrExpiredOTP = NewBaseError(
		http.StatusUnauthorized,
		"EXPIRED_OTP",
		"One-time code has expired",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	// Catalog-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrSKUAlreadyExists = NewBaseError(
		http.StatusConflict,
		"SKU_ALREADY_EXISTS",
		"A product with this SKU already exists",
		"",
	)

	ErrInventoryNotFound = NewBaseError(
		http.StatusNotFound,
		"INVENTORY_NOT_FOUND",
		"No inventory record for this product",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Insufficient stock available",
		"",
	)

	// Cart-related errors
	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"Cart item not found",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Cart is empty",
		"",
	)

	// Coupon-related errors
	ErrCouponNotFound = NewBaseError(
		http.StatusNotFound,
		"COUPON_NOT_FOUND",
		"Coupon not found",
		"",
	)

	ErrCouponInvalid = NewBaseError(
		http.StatusBadRequest,
		"COUPON_INVALID",
		"Invalid or inactive coupon",
		"",
	)

	ErrCouponUsageLimitReached = NewBaseError(
		http.StatusBadRequest,
		"COUPON_USAGE_LIMIT_REACHED",
		"Maximum usage limit reached for this coupon",
		"",
	)

	ErrCouponFirstUserOnly = NewBaseError(
		http.StatusBadRequest,
		"COUPON_FIRST_USER_ONLY",
		"This coupon is only valid for first-time users",
		"",
	)

	ErrCouponMinimumPurchase = NewBaseError(
		http.StatusBadRequest,
		"COUPON_MINIMUM_PURCHASE",
		"Order amount below the coupon's minimum purchase value",
		"",
	)

	// Checkout-related errors
	ErrCheckoutSourceMissing = NewBaseError(
		http.StatusBadRequest,
		"CHECKOUT_SOURCE_MISSING",
		"Either a product or a cart must be provided",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrNotDeliveryAgent = NewBaseError(
		http.StatusBadRequest,
		"NOT_DELIVERY_AGENT",
		"User is not a delivery agent",
		"",
	)

	// Address-related errors
	ErrAddressNotFound = NewBaseError(
		http.StatusNotFound,
		"ADDRESS_NOT_FOUND",
		"Address not found",
		"",
	)

	// Review-related errors
	ErrReviewNotFound = NewBaseError(
		http.StatusNotFound,
		"REVIEW_NOT_FOUND",
		"Review not found",
		"",
	)

	ErrReviewAlreadyExists = NewBaseError(
		http.StatusConflict,
		"REVIEW_ALREADY_EXISTS",
		"You have already reviewed this product",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)
)

// GatewayError represents a payment provider failure, propagated verbatim to
// the caller per the error handling policy. It implements AppError.
type GatewayError struct {
	err     error
	details string
}

// NewGatewayError wraps a payment provider error.
func NewGatewayError(err error, details string) AppError {
	return &GatewayError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	return errors.Wrap(e.err, "payment gateway call failed").Error()
}

// Unwrap exposes the provider error for errors.Is/As.
func (e *GatewayError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *GatewayError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *GatewayError) ErrorCode() string {
	return "GATEWAY_ERROR"
}

// Message returns the user-friendly error message
func (e *GatewayError) Message() string {
	return "Payment provider request failed"
}

// Details returns detailed error information
func (e *GatewayError) Details() string {
	if e.details != "" {
		return e.details
	}
	if e.err != nil {
		return e.err.Error()
	}

	return ""
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
