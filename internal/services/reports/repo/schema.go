package repo

import (
	"context"

	"storewatch/internal/modkit/repokit"
	perr "storewatch/internal/platform/errors"
)

// EnsureSchema creates the reports table when it does not exist
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			report_id    uuid PRIMARY KEY,
			store_id     uuid        NOT NULL,
			state        text        NOT NULL DEFAULT 'pending'
				CHECK (state IN ('pending', 'running', 'complete', 'failed')),
			requested_at timestamptz NOT NULL DEFAULT NOW(),
			started_at   timestamptz,
			completed_at timestamptz,
			reference_at timestamptz NOT NULL,
			error        text,
			csv_data     text
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_pending
			ON reports (requested_at) WHERE state = 'pending'`,
	}
	for _, s := range stmts {
		if _, err := q.Exec(ctx, s); err != nil {
			return perr.FromPostgres(err, "ensure reports schema")
		}
	}
	return nil
}
