package records

import (
	"context"

	"punchclock/internal/models"
)

// Store describes the compare-and-swap primitive over one remote JSON
// collection. Implementations are backed by the GitHub contents API or by
// memory for tests and local development.
//
// The version token is opaque; it identifies the exact committed bytes of
// the collection and changes on every successful write.
type Store interface {
	// Load fetches the whole collection at path plus its current version
	// token. A missing remote object is initialized with an empty array, so
	// the very first Load of a fresh path is itself a write and can fail
	// with a write-side error.
	Load(ctx context.Context, path string) ([]models.Record, string, error)

	// Commit serializes records and writes them at path with message as the
	// change description. When version is non-empty it is sent as the CAS
	// precondition. Returns the new version token on success, or
	// common.ErrVersionConflict when the remote rejects the precondition.
	Commit(ctx context.Context, path string, recs []models.Record, version, message string) (string, error)
}
