// Package service contains store registry read workflows
package service

import (
	"context"
	"time"

	"storewatch/internal/core/uptime"
	"storewatch/internal/modkit/repokit"
	"storewatch/internal/platform/logger"
	"storewatch/internal/services/stores/domain"
	"storewatch/internal/services/stores/repo"
)

// Service defines the service contract for stores
type Service interface {
	domain.ReaderPort
	Search(ctx context.Context, in domain.SearchInput) ([]domain.Store, error)
	Count(ctx context.Context) (int64, error)
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new stores service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("stores.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("stores.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Get returns a store by id
func (s *Svc) Get(ctx context.Context, storeID string) (domain.Store, error) {
	row, err := s.Repo.Get(ctx, storeID)
	if err != nil {
		return domain.Store{}, err
	}
	return domain.Store{ID: row.StoreID, Timezone: row.Timezone}, nil
}

// Search lists stores ordered by id
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) ([]domain.Store, error) {
	rows, err := s.Repo.List(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Store, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Store{ID: r.StoreID, Timezone: r.Timezone})
	}
	return out, nil
}

// Count returns the number of registered stores
func (s *Svc) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

// Hours returns the weekly schedule for a store.
// Rows that fail to parse are skipped with a warning; they should not exist
// if ingest validation did its job
func (s *Svc) Hours(ctx context.Context, storeID string) ([]uptime.HoursRow, error) {
	rows, err := s.Repo.HoursFor(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]uptime.HoursRow, 0, len(rows))
	for _, r := range rows {
		start, err := uptime.ParseClock(r.Start)
		if err != nil {
			logger.C(ctx).Warn().Str("store_id", storeID).Str("start", r.Start).Msg("bad business hours row")
			continue
		}
		end, err := uptime.ParseClock(r.End)
		if err != nil {
			logger.C(ctx).Warn().Str("store_id", storeID).Str("end", r.End).Msg("bad business hours row")
			continue
		}
		out = append(out, uptime.HoursRow{Day: r.Day, Start: start, End: end})
	}
	return out, nil
}

// PollsInRange returns status samples for a store within [from, to]
func (s *Svc) PollsInRange(ctx context.Context, storeID string, from, to time.Time) ([]uptime.Sample, error) {
	rows, err := s.Repo.PollsInRange(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]uptime.Sample, 0, len(rows))
	for _, r := range rows {
		st, ok := uptime.ParseStatus(r.Status)
		if !ok {
			logger.C(ctx).Warn().Str("store_id", storeID).Str("status", r.Status).Msg("unknown poll status")
			continue
		}
		out = append(out, uptime.Sample{At: r.PolledAt.UTC(), Status: st})
	}
	return out, nil
}

// LatestPollAt returns the newest poll timestamp across all stores
func (s *Svc) LatestPollAt(ctx context.Context) (time.Time, bool, error) {
	at, ok, err := s.Repo.LatestPollAt(ctx)
	if err != nil || !ok {
		return time.Time{}, ok, err
	}
	return at.UTC(), true, nil
}
