package repo

import (
	"context"

	"storewatch/internal/modkit/repokit"
	perr "storewatch/internal/platform/errors"
)

// EnsureSchema creates the store monitoring tables when they do not exist.
// Idempotent; called once at process start
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			store_id     uuid PRIMARY KEY,
			timezone_str text NOT NULL DEFAULT 'America/Chicago'
		)`,
		`CREATE TABLE IF NOT EXISTS business_hours (
			store_id         uuid NOT NULL,
			day_of_week      int  NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
			start_time_local time NOT NULL,
			end_time_local   time NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_business_hours_store
			ON business_hours (store_id)`,
		`CREATE TABLE IF NOT EXISTS store_status_polls (
			store_id  uuid        NOT NULL,
			polled_at timestamptz NOT NULL,
			status    text        NOT NULL CHECK (status IN ('active', 'inactive'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_polls_store_time
			ON store_status_polls (store_id, polled_at)`,
	}
	for _, s := range stmts {
		if _, err := q.Exec(ctx, s); err != nil {
			return perr.FromPostgres(err, "ensure stores schema")
		}
	}
	return nil
}
