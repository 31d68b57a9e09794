package module

import (
	"time"

	"storewatch/internal/platform/config"
	reportssvc "storewatch/internal/services/reports/service"
)

// FromConfig builds the worker config from the environment
func FromConfig(cfg config.Conf) reportssvc.Config {
	return reportssvc.Config{
		Concurrency:     cfg.MayInt("REPORTS_CONCURRENCY", 4),
		BatchSize:       cfg.MayInt("REPORTS_BATCH", 8),
		TickEvery:       cfg.MayDuration("REPORTS_TICK", 500*time.Millisecond),
		DefaultTimezone: cfg.MayString("DEFAULT_TIMEZONE", "America/Chicago"),
	}
}
