package service

import (
	"context"
	"time"

	"storewatch/internal/core/uptime"
	"storewatch/internal/platform/logger"
	"storewatch/internal/services/reports/repo"
)

// Run starts the worker loop that computes queued reports
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("reports-worker")
	sem := make(chan struct{}, max(1, s.cfg.Concurrency))
	ticker := time.NewTicker(s.cfg.TickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// lease a small batch; process concurrently with a simple semaphore
			jobs, err := s.Repo.LeasePending(ctx, s.cfg.BatchSize)
			if err != nil {
				log.Error().Err(err).Msg("lease pending reports failed")
				continue
			}
			for i := range jobs {
				sem <- struct{}{}
				j := jobs[i]
				go func() {
					defer func() { <-sem }()
					if err := s.build(ctx, j); err != nil {
						log.Warn().Err(err).
							Str("report_id", j.ReportID).
							Str("store_id", j.StoreID).
							Msg("report build failed")
						if ferr := s.Repo.MarkFailed(ctx, j.ReportID, err.Error()); ferr != nil {
							log.Error().Err(ferr).Str("report_id", j.ReportID).Msg("mark failed failed")
						}
					}
				}()
			}
		}
	}
}

// pollLookback fetches one extra hour before the week window so the
// carry-forward status at the window start is known
const pollLookback = 7*24*time.Hour + time.Hour

// build computes one report end to end and stores its CSV artifact
func (s *Svc) build(ctx context.Context, j repo.RowLease) error {
	store, err := s.stores.Get(ctx, j.StoreID)
	if err != nil {
		return err
	}

	ref := j.ReferenceAt.UTC()

	hours, err := s.stores.Hours(ctx, j.StoreID)
	if err != nil {
		return err
	}
	samples, err := s.stores.PollsInRange(ctx, j.StoreID, ref.Add(-pollLookback), ref)
	if err != nil {
		return err
	}

	loc, known := uptime.ResolveLocation(store.Timezone, s.defaultLoc)
	if !known {
		logger.C(ctx).Warn().
			Str("store_id", j.StoreID).
			Str("timezone", store.Timezone).
			Str("fallback", s.defaultLoc.String()).
			Msg("unknown store timezone")
	}

	rep := uptime.BuildReport(j.StoreID, ref, loc, hours, samples)
	csv, err := renderCSV([]uptime.Report{rep})
	if err != nil {
		return err
	}
	return s.Repo.MarkComplete(ctx, j.ReportID, csv)
}
