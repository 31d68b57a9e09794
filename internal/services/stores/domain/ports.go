package domain

import (
	"context"
	"time"

	"storewatch/internal/core/uptime"
)

// ReaderPort is the read surface other modules consume
type ReaderPort interface {
	// Get returns a store or a not found error
	Get(ctx context.Context, storeID string) (Store, error)

	// Hours returns the weekly schedule rows for a store; empty means 24x7
	Hours(ctx context.Context, storeID string) ([]uptime.HoursRow, error)

	// PollsInRange returns status samples for a store within [from, to]
	PollsInRange(ctx context.Context, storeID string, from, to time.Time) ([]uptime.Sample, error)

	// LatestPollAt returns the newest poll timestamp across all stores;
	// ok is false when no polls have been ingested yet
	LatestPollAt(ctx context.Context) (at time.Time, ok bool, err error)
}
