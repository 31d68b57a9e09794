// Package repo provides postgres read access for stores
package repo

import (
	"context"
	"strings"
	"time"

	"storewatch/internal/modkit/repokit"
	perr "storewatch/internal/platform/errors"
)

// Repo defines the repository contract for stores
type Repo interface {
	Get(ctx context.Context, storeID string) (RowStore, error)
	List(ctx context.Context, limit, offset int) ([]RowStore, error)
	Count(ctx context.Context) (int64, error)
	HoursFor(ctx context.Context, storeID string) ([]RowHours, error)
	PollsInRange(ctx context.Context, storeID string, from, to time.Time) ([]RowPoll, error)
	LatestPollAt(ctx context.Context) (time.Time, bool, error)
}

// RowStore is a store row from the database
type RowStore struct {
	StoreID  string
	Timezone string
}

// RowHours is a business hours row with local times rendered HH:MM:SS
type RowHours struct {
	Day   int
	Start string
	End   string
}

// RowPoll is a status poll row
type RowPoll struct {
	PolledAt time.Time
	Status   string
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

func (r *queries) Get(ctx context.Context, storeID string) (RowStore, error) {
	const sql = `
		SELECT store_id::text, timezone_str
		FROM stores
		WHERE store_id = $1::uuid
	`
	row := r.q.QueryRow(ctx, sql, storeID)
	var out RowStore
	if err := row.Scan(&out.StoreID, &out.Timezone); err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return RowStore{}, perr.NotFoundf("store %s not found", storeID)
		}
		return RowStore{}, perr.FromPostgres(err, "read store")
	}
	return out, nil
}

func (r *queries) List(ctx context.Context, limit, offset int) ([]RowStore, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const sql = `
		SELECT store_id::text, timezone_str
		FROM stores
		ORDER BY store_id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.q.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "list stores")
	}
	defer rows.Close()

	var out []RowStore
	for rows.Next() {
		var s RowStore
		if err := rows.Scan(&s.StoreID, &s.Timezone); err != nil {
			return nil, perr.FromPostgres(err, "scan store")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	row := r.q.QueryRow(ctx, `SELECT count(*) FROM stores`)
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, perr.FromPostgres(err, "count stores")
	}
	return n, nil
}

func (r *queries) HoursFor(ctx context.Context, storeID string) ([]RowHours, error) {
	const sql = `
		SELECT day_of_week,
		       to_char(start_time_local, 'HH24:MI:SS'),
		       to_char(end_time_local, 'HH24:MI:SS')
		FROM business_hours
		WHERE store_id = $1::uuid
		ORDER BY day_of_week, start_time_local
	`
	rows, err := r.q.Query(ctx, sql, storeID)
	if err != nil {
		return nil, perr.FromPostgres(err, "read business hours")
	}
	defer rows.Close()

	var out []RowHours
	for rows.Next() {
		var h RowHours
		if err := rows.Scan(&h.Day, &h.Start, &h.End); err != nil {
			return nil, perr.FromPostgres(err, "scan business hours")
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *queries) PollsInRange(ctx context.Context, storeID string, from, to time.Time) ([]RowPoll, error) {
	const sql = `
		SELECT polled_at, status
		FROM store_status_polls
		WHERE store_id = $1::uuid
		  AND polled_at >= $2
		  AND polled_at <= $3
		ORDER BY polled_at
	`
	rows, err := r.q.Query(ctx, sql, storeID, from, to)
	if err != nil {
		return nil, perr.FromPostgres(err, "read status polls")
	}
	defer rows.Close()

	var out []RowPoll
	for rows.Next() {
		var p RowPoll
		if err := rows.Scan(&p.PolledAt, &p.Status); err != nil {
			return nil, perr.FromPostgres(err, "scan status poll")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *queries) LatestPollAt(ctx context.Context) (time.Time, bool, error) {
	row := r.q.QueryRow(ctx, `SELECT max(polled_at) FROM store_status_polls`)
	var at *time.Time
	if err := row.Scan(&at); err != nil {
		return time.Time{}, false, perr.FromPostgres(err, "read latest poll timestamp")
	}
	if at == nil {
		return time.Time{}, false, nil
	}
	return *at, true, nil
}
