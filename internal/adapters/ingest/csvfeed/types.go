// Package csvfeed streams the store monitoring CSV feeds: timezones,
// business hours, and status polls. Readers validate rows, skip and count
// bad ones, and hand batches to a callback so callers control transaction
// and memory footprint
package csvfeed

import (
	"time"

	"storewatch/internal/core/uptime"
)

// DefaultChunkSize is the batch size handed to callbacks unless overridden
const DefaultChunkSize = 10000

// TimezoneRecord is one validated row of the timezone feed
type TimezoneRecord struct {
	StoreID  string
	Timezone string
}

// HoursRecord is one validated row of the business hours feed
type HoursRecord struct {
	StoreID string
	Day     int
	Start   uptime.ClockTime
	End     uptime.ClockTime
}

// PollRecord is one validated row of the status poll feed, UTC
type PollRecord struct {
	StoreID string
	At      time.Time
	Status  uptime.Status
}

// Stats counts what a reader saw
type Stats struct {
	Rows    int
	Skipped int
}
