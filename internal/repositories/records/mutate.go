package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"punchclock/internal/common"
	"punchclock/internal/models"
)

// Retry defaults for optimistic-concurrency mutations.
const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 800 * time.Millisecond
)

// MutateFunc transforms the freshly loaded collection into the collection to
// commit. It is re-invoked from scratch on every attempt, so it must not
// retain state between calls.
type MutateFunc func(recs []models.Record) ([]models.Record, error)

type mutateOptions struct {
	maxAttempts uint64
	backoff     time.Duration
}

// MutateOption tunes the retry loop.
type MutateOption func(*mutateOptions)

// WithMaxAttempts caps the total number of load-transform-commit attempts.
// Values below one are treated as one.
func WithMaxAttempts(n int) MutateOption {
	return func(o *mutateOptions) {
		if n < 1 {
			n = 1
		}
		o.maxAttempts = uint64(n)
	}
}

// WithBackoff sets the pause between attempts.
func WithBackoff(d time.Duration) MutateOption {
	return func(o *mutateOptions) { o.backoff = d }
}

// Mutate runs one logical read-modify-write against the collection at path:
// load the current state and version token, apply fn, commit with that token
// as the precondition. A version conflict triggers a retry from a fresh
// load, up to the attempt budget; the transform is re-applied against the
// newer base, so the mutation either lands whole or not at all.
//
// Every mutation goes through here — one retry discipline for appends and
// in-place edits alike.
func Mutate(ctx context.Context, s Store, path, message string, fn MutateFunc, opts ...MutateOption) error {
	o := mutateOptions{maxAttempts: DefaultMaxAttempts, backoff: DefaultBackoff}
	for _, opt := range opts {
		opt(&o)
	}

	b := retry.WithMaxRetries(o.maxAttempts-1, retry.NewConstant(o.backoff))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		recs, version, err := s.Load(ctx, path)
		if err != nil {
			// Create-on-first-read can itself lose a race and surface a
			// conflict from the write side of Load.
			if errors.Is(err, common.ErrVersionConflict) {
				return retry.RetryableError(err)
			}
			return err
		}
		next, err := fn(recs)
		if err != nil {
			return err
		}
		if _, err := s.Commit(ctx, path, next, version, message); err != nil {
			if errors.Is(err, common.ErrVersionConflict) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("mutating %s: %w", path, err)
	}
	return nil
}

// Append adds exactly one record to the collection, retrying the whole
// load-append-commit sequence on version conflicts. The commit message names
// the punch being added.
func Append(ctx context.Context, s Store, path string, rec models.Record, opts ...MutateOption) error {
	message := fmt.Sprintf("Add ponto %s %s %s", rec.User, rec.Date, rec.Time)
	return Mutate(ctx, s, path, message, func(recs []models.Record) ([]models.Record, error) {
		return append(recs, rec), nil
	}, opts...)
}
