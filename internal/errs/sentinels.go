// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across storage/client/store layers.
var (
	// ErrNotFound indicates the requested entity or storage key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoCredential indicates no persisted login credential is available.
	ErrNoCredential = errors.New("no credential (login required)")

	// ErrInvalidQuantity indicates a non-positive quantity passed to a cart mutation.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrEmptyCart indicates checkout was attempted with nothing in the cart.
	ErrEmptyCart = errors.New("empty cart")
)
