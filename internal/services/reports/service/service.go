// Package service contains report generation workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storewatch/internal/modkit/repokit"
	perr "storewatch/internal/platform/errors"
	"storewatch/internal/platform/logger"
	"storewatch/internal/services/reports/domain"
	"storewatch/internal/services/reports/repo"
	storesdom "storewatch/internal/services/stores/domain"
)

// Config tunes the report worker
type Config struct {
	// Concurrency caps in-flight report builds
	Concurrency int

	// BatchSize is how many pending reports one lease takes
	BatchSize int

	// TickEvery is the poll interval for pending work
	TickEvery time.Duration

	// DefaultTimezone is the IANA zone used when a store has none or a bad one
	DefaultTimezone string
}

// Service defines the service contract for reports
type Service interface {
	domain.ServicePort
	domain.RunnerPort
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	stores storesdom.ReaderPort

	cfg        Config
	defaultLoc *time.Location
}

// New creates a new reports service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], stores storesdom.ReaderPort, cfg Config) *Svc {
	if db == nil {
		panic("reports.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reports.Service requires a non nil Repo binder")
	}
	if stores == nil {
		panic("reports.Service requires a stores reader port")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 8
	}
	if cfg.TickEvery <= 0 {
		cfg.TickEvery = 500 * time.Millisecond
	}
	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		logger.Named("reports").Warn().
			Str("timezone", cfg.DefaultTimezone).
			Msg("bad default timezone, using UTC")
		loc = time.UTC
	}
	return &Svc{
		Repo:       binder.Bind(db),
		binder:     binder,
		db:         db,
		stores:     stores,
		cfg:        cfg,
		defaultLoc: loc,
	}
}

// Trigger queues a report run for a store and returns its id.
// The reference instant is the newest poll anywhere, pinned on the row at
// trigger time so replayed historical feeds produce stable reports
func (s *Svc) Trigger(ctx context.Context, storeID string) (domain.TriggerResult, error) {
	if _, err := s.stores.Get(ctx, storeID); err != nil {
		return domain.TriggerResult{}, err
	}
	ref, ok, err := s.stores.LatestPollAt(ctx)
	if err != nil {
		return domain.TriggerResult{}, err
	}
	if !ok {
		return domain.TriggerResult{}, perr.Unavailablef("no status polls ingested yet")
	}

	id := uuid.NewString()
	if err := s.Repo.Create(ctx, id, storeID, ref); err != nil {
		return domain.TriggerResult{}, err
	}
	return domain.TriggerResult{ReportID: id}, nil
}

// Get returns a report run by id, including the CSV when complete
func (s *Svc) Get(ctx context.Context, reportID string) (domain.Report, error) {
	row, err := s.Repo.Get(ctx, reportID)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.Report{
		ID:          row.ReportID,
		StoreID:     row.StoreID,
		State:       domain.State(row.State),
		RequestedAt: row.RequestedAt,
		StartedAt:   row.StartedAt,
		CompletedAt: row.CompletedAt,
		ReferenceAt: row.ReferenceAt,
		Error:       row.Error,
		CSV:         row.CSV,
	}, nil
}
