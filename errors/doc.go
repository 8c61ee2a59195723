// Package errors provides unified error handling for the auth kit: structured
// error types with machine-readable codes, HTTP status mapping, and JSON
// response serialization.
//
// Every failure mode of the authentication flow maps to a structured AppError
// with a machine-readable code and an HTTP status. Callback handlers surface
// these as JSON bodies rather than redirects so a failed login never bounces
// the user agent into a redirect loop.
package errors
