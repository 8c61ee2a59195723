package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// MalformedToken creates a new AppError for a structurally invalid token string.
func MalformedToken(cause error) *AppError {
	return &AppError{
		Code: ErrCodeMalformedToken, Message: "The token is not a well-formed compact JWT.",
		HTTPStatus: http.StatusUnauthorized, Cause: cause,
	}
}

// MissingOAuthParameter creates a new AppError for a callback request that is
// missing a required query parameter.
func MissingOAuthParameter(param string) *AppError {
	return &AppError{
		Code: ErrCodeMissingOAuthParameter, Message: fmt.Sprintf("Missing required OAuth parameter: %s", param),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"parameter": param},
	}
}

// MalformedState creates a new AppError for an undecodable state parameter.
func MalformedState(cause error) *AppError {
	return &AppError{
		Code: ErrCodeMalformedState, Message: "The state parameter could not be decoded.",
		HTTPStatus: http.StatusBadRequest, Cause: cause,
	}
}

// UpstreamExchangeFailed creates a new AppError for a failed authorization-code
// exchange. It carries the provider's status code and raw response body so the
// caller can surface them verbatim.
func UpstreamExchangeFailed(status int, body string) *AppError {
	return &AppError{
		Code: ErrCodeUpstreamExchangeFailed, Message: "Failed to exchange authorization code for tokens.",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"status": status, "data": body},
	}
}

// UpstreamFetchFailed creates a new AppError for a failed provider API fetch.
func UpstreamFetchFailed(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeUpstreamFetchFailed, Message: fmt.Sprintf("Request to %s failed.", path),
		HTTPStatus: http.StatusBadGateway, Cause: cause,
		Details: map[string]any{"path": path},
	}
}

// Validation creates a new AppError for invalid input or configuration.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An internal error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
