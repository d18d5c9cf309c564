// Package common defines shared constants and sentinel errors used across
// the punchclock layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.

	// ErrVersionConflict signals that a compare-and-swap write was rejected
	// because the supplied version token no longer matches the remote object.
	// Expected and recoverable: the retry loop reloads and tries again.
	ErrVersionConflict = errors.New("version conflict")

	// ErrNotFound signals that no record with the requested id exists.
	ErrNotFound = errors.New("not found")

	// Service-level validation errors.

	// ErrFutureTimestamp signals a punch timestamp ahead of the local clock
	// while future timestamps are disabled.
	ErrFutureTimestamp = errors.New("timestamp is in the future")

	// ErrInvalidTag signals a category tag outside the allowed set.
	ErrInvalidTag = errors.New("invalid tag")
)
