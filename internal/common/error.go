// Package common defines shared constants and sentinel errors used across
// the layers of the auth service. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Registration / authentication errors.
	ErrEmailAlreadyInUse  = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid email/password")
	ErrUserNotFound       = errors.New("user not found")

	// Refresh token lifecycle errors.
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Access token verification errors.
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)
