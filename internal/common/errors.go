// Package common defines shared constants and sentinel errors used across
// walletkeeper components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrorUnauthorized is the authentication failure kind. Every login or
	// token failure matches it, whatever the underlying reason.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput marks malformed caller input (empty password, bad email...).
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration is fatal and reported at startup, never per request.
	ErrConfiguration = errors.New("configuration error")

	// ErrStoreUnavailable marks a transient failure of the credential store.
	// It is never conflated with ErrorUnauthorized.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// Token errors. Both match ErrorUnauthorized.
	ErrInvalidToken = fmt.Errorf("invalid token: %w", ErrorUnauthorized)
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrorUnauthorized)
)
