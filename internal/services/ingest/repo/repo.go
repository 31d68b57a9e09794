// Package repo provides postgres write access for feed ingestion
package repo

import (
	"context"
	"time"

	"storewatch/internal/modkit/repokit"
	perr "storewatch/internal/platform/errors"
)

// Repo defines the bulk write contract for the three feeds
type Repo interface {
	UpsertTimezones(ctx context.Context, rows []TZRow) error
	EnsureStores(ctx context.Context, storeIDs []string, defaultTZ string) error
	DeleteAllHours(ctx context.Context) error
	InsertHours(ctx context.Context, rows []HoursRow) error
	DeleteAllPolls(ctx context.Context) error
	InsertPolls(ctx context.Context, rows []PollRow) error
}

// TZRow is a timezone upsert row
type TZRow struct {
	StoreID  string
	Timezone string
}

// HoursRow is a business hours insert row with HH:MM:SS local times
type HoursRow struct {
	StoreID string
	Day     int
	Start   string
	End     string
}

// PollRow is a status poll insert row
type PollRow struct {
	StoreID string
	At      time.Time
	Status  string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// UpsertTimezones writes timezone rows in one round trip via unnest
func (r *queries) UpsertTimezones(ctx context.Context, rows []TZRow) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]string, len(rows))
	tzs := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.StoreID
		tzs[i] = row.Timezone
	}
	const sql = `
		INSERT INTO stores (store_id, timezone_str)
		SELECT s::uuid, tz
		FROM unnest($1::text[], $2::text[]) AS t(s, tz)
		ON CONFLICT (store_id) DO UPDATE SET timezone_str = EXCLUDED.timezone_str
	`
	_, err := r.q.Exec(ctx, sql, ids, tzs)
	return perr.FromPostgres(err, "upsert timezones")
}

// EnsureStores registers stores seen in other feeds with the default timezone
func (r *queries) EnsureStores(ctx context.Context, storeIDs []string, defaultTZ string) error {
	if len(storeIDs) == 0 {
		return nil
	}
	const sql = `
		INSERT INTO stores (store_id, timezone_str)
		SELECT s::uuid, $2
		FROM unnest($1::text[]) AS t(s)
		ON CONFLICT (store_id) DO NOTHING
	`
	_, err := r.q.Exec(ctx, sql, storeIDs, defaultTZ)
	return perr.FromPostgres(err, "ensure stores")
}

func (r *queries) DeleteAllHours(ctx context.Context) error {
	_, err := r.q.Exec(ctx, `DELETE FROM business_hours`)
	return perr.FromPostgres(err, "clear business hours")
}

func (r *queries) InsertHours(ctx context.Context, rows []HoursRow) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]string, len(rows))
	days := make([]int, len(rows))
	starts := make([]string, len(rows))
	ends := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.StoreID
		days[i] = row.Day
		starts[i] = row.Start
		ends[i] = row.End
	}
	const sql = `
		INSERT INTO business_hours (store_id, day_of_week, start_time_local, end_time_local)
		SELECT s::uuid, d, st::time, en::time
		FROM unnest($1::text[], $2::int[], $3::text[], $4::text[]) AS t(s, d, st, en)
	`
	_, err := r.q.Exec(ctx, sql, ids, days, starts, ends)
	return perr.FromPostgres(err, "insert business hours")
}

func (r *queries) DeleteAllPolls(ctx context.Context) error {
	_, err := r.q.Exec(ctx, `DELETE FROM store_status_polls`)
	return perr.FromPostgres(err, "clear status polls")
}

func (r *queries) InsertPolls(ctx context.Context, rows []PollRow) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]string, len(rows))
	ats := make([]time.Time, len(rows))
	statuses := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.StoreID
		ats[i] = row.At
		statuses[i] = row.Status
	}
	const sql = `
		INSERT INTO store_status_polls (store_id, polled_at, status)
		SELECT s::uuid, ts, st
		FROM unnest($1::text[], $2::timestamptz[], $3::text[]) AS t(s, ts, st)
	`
	_, err := r.q.Exec(ctx, sql, ids, ats, statuses)
	return perr.FromPostgres(err, "insert status polls")
}
