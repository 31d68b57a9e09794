// Package repo provides postgres access for report runs
package repo

import (
	"context"
	"strings"
	"time"

	"storewatch/internal/modkit/repokit"
	perr "storewatch/internal/platform/errors"
)

// Repo defines the repository contract for reports
type Repo interface {
	Create(ctx context.Context, reportID, storeID string, referenceAt time.Time) error
	Get(ctx context.Context, reportID string) (RowReport, error)
	LeasePending(ctx context.Context, limit int) ([]RowLease, error)
	MarkComplete(ctx context.Context, reportID string, csv string) error
	MarkFailed(ctx context.Context, reportID string, reason string) error
}

// RowReport is a report row from the database
type RowReport struct {
	ReportID    string
	StoreID     string
	State       string
	RequestedAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	ReferenceAt *time.Time
	Error       string
	CSV         string
}

// RowLease is a leased pending report handed to a worker
type RowLease struct {
	ReportID    string
	StoreID     string
	ReferenceAt time.Time
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

// Create queues a report with its reference instant pinned at trigger time,
// so the computation is fully determined by the row
func (r *queries) Create(ctx context.Context, reportID, storeID string, referenceAt time.Time) error {
	const sql = `
		INSERT INTO reports (report_id, store_id, state, requested_at, reference_at)
		VALUES ($1::uuid, $2::uuid, 'pending', NOW(), $3)
	`
	_, err := r.q.Exec(ctx, sql, reportID, storeID, referenceAt)
	return perr.FromPostgres(err, "create report")
}

func (r *queries) Get(ctx context.Context, reportID string) (RowReport, error) {
	const sql = `
		SELECT report_id::text, store_id::text, state, requested_at,
		       started_at, completed_at, reference_at,
		       COALESCE(error, ''), COALESCE(csv_data, '')
		FROM reports
		WHERE report_id = $1::uuid
	`
	row := r.q.QueryRow(ctx, sql, reportID)
	var out RowReport
	err := row.Scan(
		&out.ReportID,
		&out.StoreID,
		&out.State,
		&out.RequestedAt,
		&out.StartedAt,
		&out.CompletedAt,
		&out.ReferenceAt,
		&out.Error,
		&out.CSV,
	)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return RowReport{}, perr.NotFoundf("report %s not found", reportID)
		}
		return RowReport{}, perr.FromPostgres(err, "read report")
	}
	return out, nil
}

// LeasePending flips up to limit pending rows to running and returns them.
// SKIP LOCKED keeps concurrent workers from double leasing
func (r *queries) LeasePending(ctx context.Context, limit int) ([]RowLease, error) {
	const sql = `
		WITH picked AS (
			SELECT report_id
			FROM reports
			WHERE state = 'pending'
			ORDER BY requested_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE reports r
		SET state = 'running', started_at = NOW()
		FROM picked
		WHERE r.report_id = picked.report_id
		RETURNING r.report_id::text, r.store_id::text, r.reference_at
	`
	rows, err := r.q.Query(ctx, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "lease pending reports")
	}
	defer rows.Close()

	var out []RowLease
	for rows.Next() {
		var l RowLease
		if err := rows.Scan(&l.ReportID, &l.StoreID, &l.ReferenceAt); err != nil {
			return nil, perr.FromPostgres(err, "scan leased report")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *queries) MarkComplete(ctx context.Context, reportID string, csv string) error {
	const sql = `
		UPDATE reports
		SET state = 'complete', completed_at = NOW(), csv_data = $2, error = NULL
		WHERE report_id = $1::uuid
	`
	_, err := r.q.Exec(ctx, sql, reportID, csv)
	return perr.FromPostgres(err, "complete report")
}

func (r *queries) MarkFailed(ctx context.Context, reportID string, reason string) error {
	const sql = `
		UPDATE reports
		SET state = 'failed', completed_at = NOW(), error = $2
		WHERE report_id = $1::uuid
	`
	_, err := r.q.Exec(ctx, sql, reportID, reason)
	return perr.FromPostgres(err, "fail report")
}
