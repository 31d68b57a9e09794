package service

import (
	"encoding/csv"
	"strconv"
	"strings"

	"storewatch/internal/core/uptime"
	perr "storewatch/internal/platform/errors"
)

// csvHeader is the artifact column order; hour columns are minutes,
// day and week columns are hours
var csvHeader = []string{
	"store_id",
	"uptime_last_hour",
	"uptime_last_day",
	"uptime_last_week",
	"downtime_last_hour",
	"downtime_last_day",
	"downtime_last_week",
}

// renderCSV serializes reports into the downloadable artifact
func renderCSV(reports []uptime.Report) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "write csv header")
	}
	for _, r := range reports {
		rec := []string{
			r.StoreID,
			strconv.Itoa(r.UptimeLastHour),
			formatHours(r.UptimeLastDay),
			formatHours(r.UptimeLastWeek),
			strconv.Itoa(r.DowntimeLastHour),
			formatHours(r.DowntimeLastDay),
			formatHours(r.DowntimeLastWeek),
		}
		if err := w.Write(rec); err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeUnknown, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "flush csv")
	}
	return b.String(), nil
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
