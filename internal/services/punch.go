// Package services implements the flows the UI layer calls: registering
// punches, amending a punch time, and listing the collection.
package services

import (
	"context"
	"fmt"
	"time"

	"punchclock/internal/common"
	"punchclock/internal/config"
	"punchclock/internal/logging"
	"punchclock/internal/models"
	"punchclock/internal/repositories/records"
	"punchclock/internal/timex"
)

// PunchService is the seam between the presentation layer and the versioned
// store. Every mutating flow reloads fresh state first; no collection state
// is cached across calls.
type PunchService struct {
	store       records.Store
	path        string
	zone        *time.Location
	allowFuture bool
	clock       timex.Clock
	log         logging.Logger
	mutateOpts  []records.MutateOption
}

// PunchOption customizes a PunchService.
type PunchOption func(*PunchService)

// WithClock replaces the time source. Default is the real clock.
func WithClock(c timex.Clock) PunchOption {
	return func(s *PunchService) { s.clock = c }
}

// WithLogger attaches a logger.
func WithLogger(l logging.Logger) PunchOption {
	return func(s *PunchService) { s.log = logging.OrNop(l) }
}

// WithMutateOptions forwards retry tuning to every mutation.
func WithMutateOptions(opts ...records.MutateOption) PunchOption {
	return func(s *PunchService) { s.mutateOpts = opts }
}

// NewPunchService wires a store and configuration into a service. Fails when
// the configured time zone cannot be loaded.
func NewPunchService(store records.Store, cfg *config.Config, opts ...PunchOption) (*PunchService, error) {
	zone, err := timex.LoadZone(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone: %w", err)
	}
	s := &PunchService{
		store:       store,
		path:        cfg.Path,
		zone:        zone,
		allowFuture: cfg.AllowFuture,
		clock:       timex.RealClock{},
		log:         logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register validates and appends one punch at the given timestamp. The
// timestamp is interpreted in the configured zone; future timestamps are
// rejected unless the allow-future flag is set.
func (s *PunchService) Register(ctx context.Context, owner string, at time.Time, origin models.Origin, tag models.Tag, note string) (models.Record, error) {
	if !tag.Valid() {
		return models.Record{}, fmt.Errorf("%w: %q", common.ErrInvalidTag, tag)
	}

	at = at.In(s.zone)
	if !s.allowFuture && at.After(s.clock.Now().In(s.zone)) {
		return models.Record{}, common.ErrFutureTimestamp
	}

	rec := models.New(owner, at, origin, tag, note)
	if err := records.Append(ctx, s.store, s.path, rec, s.mutateOpts...); err != nil {
		s.log.Error(ctx, "punch not saved", "owner", owner, "tag", tag, "error", err)
		return models.Record{}, fmt.Errorf("registering punch: %w", err)
	}

	s.log.Info(ctx, "punch registered", "id", rec.ID, "owner", owner,
		"date", rec.Date, "time", rec.Time, "tag", tag)
	return rec, nil
}

// RegisterNow appends a punch stamped with the current time.
func (s *PunchService) RegisterNow(ctx context.Context, owner string, tag models.Tag, note string) (models.Record, error) {
	return s.Register(ctx, owner, timex.NowIn(s.clock, s.zone), models.OriginAutomatic, tag, note)
}

// AmendTime rewrites the wall-clock time of the record with the given id,
// through the same compare-and-swap retry loop as appends. Identifiers are
// compared as strings since collections may hold numeric and token ids
// side by side.
func (s *PunchService) AmendTime(ctx context.Context, id string, newTime time.Time) error {
	hhmmss := newTime.In(s.zone).Format(models.TimeLayout)
	message := fmt.Sprintf("Atualiza ponto %s %s", id, hhmmss)

	err := records.Mutate(ctx, s.store, s.path, message, func(recs []models.Record) ([]models.Record, error) {
		for i := range recs {
			if recs[i].ID == id {
				recs[i].Time = hhmmss
				return recs, nil
			}
		}
		return nil, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}, s.mutateOpts...)
	if err != nil {
		return fmt.Errorf("amending punch time: %w", err)
	}

	s.log.Info(ctx, "punch time amended", "id", id, "time", hhmmss)
	return nil
}

// List returns the full collection.
func (s *PunchService) List(ctx context.Context) ([]models.Record, error) {
	recs, _, err := s.store.Load(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("listing punches: %w", err)
	}
	return recs, nil
}

// ListBetween returns the records whose calendar date falls inside the
// inclusive [from, to] interval, in collection order. The date strings sort
// lexicographically, so plain string comparison suffices.
func (s *PunchService) ListBetween(ctx context.Context, from, to time.Time) ([]models.Record, error) {
	lo := from.In(s.zone).Format(models.DateLayout)
	hi := to.In(s.zone).Format(models.DateLayout)

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Record, 0, len(all))
	for _, r := range all {
		if r.Date >= lo && r.Date <= hi {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
