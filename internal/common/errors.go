// Package common defines shared constants and sentinel errors used across
// client and server layers of the case intake system. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Service-level errors (generic/internal flow control).
	ErrInternal    = errors.New("internal error")
	ErrUnavailable = errors.New("storage unavailable")

	// Validation errors (missing required fields at submit time).
	ErrValidation = errors.New("validation error")

	// Auth errors (binary gate).
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)
