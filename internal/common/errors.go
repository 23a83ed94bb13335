// Package common defines shared constants and sentinel errors used across
// the server, transport and client layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Validation errors.
	ErrValidation     = errors.New("validation error")
	ErrUndefinedSpeed = errors.New("speed is undefined for zero duration")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Startup errors.
	ErrSigningKeyMissing = errors.New("signing key is not configured")
)
