// Package errors provides the standardized error model shared by HTTP handlers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidEmail  ErrorCode = "INVALID_EMAIL"
	ErrCodeSlugInvalid   ErrorCode = "SLUG_INVALID"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeRateLimited   ErrorCode = "RATE_LIMITED"
	ErrCodeSlugTaken     ErrorCode = "SLUG_TAKEN"
	ErrCodeStoreNotFound ErrorCode = "STORE_NOT_FOUND"

	ErrCodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound      ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	ErrCodeDatabaseError      ErrorCode = "DATABASE_ERROR"
	ErrCodeSearchQueryFailed  ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeStorageUploadError ErrorCode = "STORAGE_UPLOAD_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Status    int                    `json:"-"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error's metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Status:    HTTPStatus(code),
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidInputError reports a missing or malformed request field.
func NewInvalidInputError(message string) *StandardError {
	return newError(ErrCodeInvalidInput, message, "", false)
}

func NewInvalidEmailError() *StandardError {
	return newError(ErrCodeInvalidEmail, "Invalid email address", "", false)
}

func NewSlugInvalidError(details string) *StandardError {
	return newError(ErrCodeSlugInvalid, "Store name must be at least 3 characters", details, false)
}

// NewUnauthorizedError reports a missing or invalid bearer token.
func NewUnauthorizedError(details string) *StandardError {
	return newError(ErrCodeUnauthorized, "Unauthorized", details, false)
}

func NewForbiddenError(message string) *StandardError {
	return newError(ErrCodeForbidden, message, "", false)
}

func NewRateLimitedError() *StandardError {
	return newError(ErrCodeRateLimited, "Too many requests, please try again later", "", true)
}

func NewSlugTakenError(slug string) *StandardError {
	return newError(ErrCodeSlugTaken,
		"This store name is already taken. Please try one of the suggestions or choose a different name.",
		fmt.Sprintf("slug: %s", slug), false)
}

func NewStoreNotFoundError(slug string) *StandardError {
	return newError(ErrCodeStoreNotFound, "Store not found", fmt.Sprintf("slug: %s", slug), false)
}

func NewOrderNotFoundError(orderID string) *StandardError {
	return newError(ErrCodeOrderNotFound, "Order not found", fmt.Sprintf("orderId: %s", orderID), false)
}

func NewProductNotFoundError(productID string) *StandardError {
	return newError(ErrCodeProductNotFound, "Product not found", fmt.Sprintf("productId: %s", productID), false)
}

func NewNotificationNotFoundError(id string) *StandardError {
	return newError(ErrCodeNotificationNotFound, "Notification not found", fmt.Sprintf("notificationId: %s", id), false)
}

// NewDatabaseError surfaces the underlying message, as callers of the
// storefront API expect to see the backend failure reason.
func NewDatabaseError(err error) *StandardError {
	return newError(ErrCodeDatabaseError, err.Error(), err.Error(), true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Product search failed", err.Error(), true)
}

func NewStorageUploadError(err error) *StandardError {
	return newError(ErrCodeStorageUploadError, "Upload failed", err.Error(), true)
}

func NewInternalError(err error) *StandardError {
	msg := "Unexpected error"
	if err != nil {
		msg = err.Error()
	}
	return newError(ErrCodeInternal, msg, msg, false)
}

// ==========================
// 3. Mapping Functions
// ==========================

// HTTPStatus maps an error code to the response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidEmail, ErrCodeSlugInvalid:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeOrderNotFound, ErrCodeProductNotFound, ErrCodeStoreNotFound, ErrCodeNotificationNotFound:
		return http.StatusNotFound
	case ErrCodeSlugTaken:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		if stdErr.Status == 0 {
			stdErr.Status = HTTPStatus(stdErr.Code)
		}
		return stdErr
	}
	return NewInternalError(err)
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "AUTHORIZED") || strings.Contains(codeStr, "FORBIDDEN"):
		return "AUTH"
	case strings.HasSuffix(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "STORAGE"):
		return "STORAGE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "SLUG"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// IsClientError reports whether the code belongs to the 4xx range.
func IsClientError(code ErrorCode) bool {
	s := HTTPStatus(code)
	return s >= 400 && s < 500
}
