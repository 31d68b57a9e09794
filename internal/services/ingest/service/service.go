// Package service orchestrates CSV feed ingestion into postgres
package service

import (
	"context"

	"storewatch/internal/adapters/ingest/csvfeed"
	"storewatch/internal/modkit/repokit"
	"storewatch/internal/platform/logger"
	"storewatch/internal/services/ingest/repo"
)

// Config tunes an ingest run
type Config struct {
	// ChunkSize is rows per database round trip
	ChunkSize int

	// DefaultTimezone is assigned to stores seen only in the hours or poll feeds
	DefaultTimezone string
}

// Paths point at the three feed files; empty paths are skipped
type Paths struct {
	Timezones string
	Hours     string
	Polls     string
}

// Summary reports what one run ingested per feed
type Summary struct {
	Timezones csvfeed.Stats
	Hours     csvfeed.Stats
	Polls     csvfeed.Stats
}

// Svc implements feed ingestion
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
}

// New creates a new ingest service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non nil Repo binder")
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = csvfeed.DefaultChunkSize
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = "America/Chicago"
	}
	return &Svc{binder: binder, db: db, cfg: cfg}
}

// Run ingests the given feeds. Each feed replaces its table contents inside
// its own transaction, so a failed file leaves the previous snapshot intact
func (s *Svc) Run(ctx context.Context, p Paths) (Summary, error) {
	log := logger.Named("ingest")
	var sum Summary

	if p.Timezones != "" {
		err := s.db.Tx(ctx, func(q repokit.Queryer) error {
			r := s.binder.Bind(q)
			st, err := csvfeed.ReadTimezones(p.Timezones, s.cfg.ChunkSize, func(batch []csvfeed.TimezoneRecord) error {
				rows := make([]repo.TZRow, len(batch))
				for i, rec := range batch {
					rows[i] = repo.TZRow{StoreID: rec.StoreID, Timezone: rec.Timezone}
				}
				return r.UpsertTimezones(ctx, rows)
			})
			sum.Timezones = st
			return err
		})
		if err != nil {
			return sum, err
		}
		log.Info().Int("rows", sum.Timezones.Rows).Int("skipped", sum.Timezones.Skipped).Msg("timezones ingested")
	}

	if p.Hours != "" {
		err := s.db.Tx(ctx, func(q repokit.Queryer) error {
			r := s.binder.Bind(q)
			if err := r.DeleteAllHours(ctx); err != nil {
				return err
			}
			st, err := csvfeed.ReadHours(p.Hours, s.cfg.ChunkSize, func(batch []csvfeed.HoursRecord) error {
				if err := r.EnsureStores(ctx, storeIDsOfHours(batch), s.cfg.DefaultTimezone); err != nil {
					return err
				}
				rows := make([]repo.HoursRow, len(batch))
				for i, rec := range batch {
					rows[i] = repo.HoursRow{
						StoreID: rec.StoreID,
						Day:     rec.Day,
						Start:   rec.Start.String(),
						End:     rec.End.String(),
					}
				}
				return r.InsertHours(ctx, rows)
			})
			sum.Hours = st
			return err
		})
		if err != nil {
			return sum, err
		}
		log.Info().Int("rows", sum.Hours.Rows).Int("skipped", sum.Hours.Skipped).Msg("business hours ingested")
	}

	if p.Polls != "" {
		err := s.db.Tx(ctx, func(q repokit.Queryer) error {
			r := s.binder.Bind(q)
			if err := r.DeleteAllPolls(ctx); err != nil {
				return err
			}
			st, err := csvfeed.ReadPolls(p.Polls, s.cfg.ChunkSize, func(batch []csvfeed.PollRecord) error {
				if err := r.EnsureStores(ctx, storeIDsOfPolls(batch), s.cfg.DefaultTimezone); err != nil {
					return err
				}
				rows := make([]repo.PollRow, len(batch))
				for i, rec := range batch {
					rows[i] = repo.PollRow{StoreID: rec.StoreID, At: rec.At, Status: string(rec.Status)}
				}
				return r.InsertPolls(ctx, rows)
			})
			sum.Polls = st
			return err
		})
		if err != nil {
			return sum, err
		}
		log.Info().Int("rows", sum.Polls.Rows).Int("skipped", sum.Polls.Skipped).Msg("status polls ingested")
	}

	return sum, nil
}

func storeIDsOfHours(batch []csvfeed.HoursRecord) []string {
	return dedupe(batch, func(r csvfeed.HoursRecord) string { return r.StoreID })
}

func storeIDsOfPolls(batch []csvfeed.PollRecord) []string {
	return dedupe(batch, func(r csvfeed.PollRecord) string { return r.StoreID })
}

func dedupe[T any](in []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
