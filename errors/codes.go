package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Token errors
const (
	// ErrCodeMalformedToken indicates a structurally invalid compact token string.
	ErrCodeMalformedToken ErrorCode = "MALFORMED_TOKEN"
)

// OAuth flow errors
const (
	// ErrCodeMissingOAuthParameter indicates the callback was invoked without a
	// required query parameter (code or state).
	ErrCodeMissingOAuthParameter ErrorCode = "MISSING_OAUTH_PARAMETER"
	// ErrCodeMalformedState indicates the state query parameter could not be decoded.
	ErrCodeMalformedState ErrorCode = "MALFORMED_STATE"
	// ErrCodeUpstreamExchangeFailed indicates the provider's token endpoint
	// returned a non-success status for the code exchange.
	ErrCodeUpstreamExchangeFailed ErrorCode = "UPSTREAM_EXCHANGE_FAILED"
)

// Entitlement errors
const (
	// ErrCodeUpstreamFetchFailed indicates a permissions or quotas fetch against
	// the provider API failed.
	ErrCodeUpstreamFetchFailed ErrorCode = "UPSTREAM_FETCH_FAILED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates invalid input or configuration.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
