package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Error codes
const (
	CodeAppError   = "APP_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeTransport  = "TRANSPORT_ERROR"
	CodeDecode     = "DECODE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCache      = "CACHE_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// APIError is a non-2xx answer from the backend. Detail holds a plain string
// {detail}; DetailItems holds the msg fields of a list-shaped {detail}.
type APIError struct {
	*AppError
	Detail      string
	DetailItems []string
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func (e *APIError) WithDetail(detail string, items []string) *APIError {
	e.Detail = detail
	e.DetailItems = items
	return e
}

// TransportError means the request never produced a usable HTTP response.
type TransportError struct {
	*AppError
	URL string
}

func NewTransportError(message, url string, cause error) *TransportError {
	return &TransportError{
		AppError: &AppError{
			Message: message,
			Code:    CodeTransport,
			Context: map[string]any{
				"url": url,
			},
			Cause: cause,
		},
		URL: url,
	}
}

type DecodeError struct {
	*AppError
}

func NewDecodeError(message, url string, cause error) *DecodeError {
	return &DecodeError{
		AppError: &AppError{
			Message: message,
			Code:    CodeDecode,
			Context: map[string]any{
				"url": url,
			},
			Cause: cause,
		},
	}
}

type ValidationError struct {
	*AppError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

// StatusCode returns the HTTP status carried by an APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return stderrors.As(err, &transportErr)
}

// Detail returns the server's plain-string detail message, if any.
func Detail(err error) string {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// DetailMessage is Detail, or the list-shaped detail joined with ", ".
func DetailMessage(err error) string {
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		return ""
	}
	if apiErr.Detail != "" {
		return apiErr.Detail
	}
	return strings.Join(apiErr.DetailItems, ", ")
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return stderrors.As(err, &validationErr)
}
