package uptime

import (
	"math"
	"time"
)

// Report is the computed availability summary for one store, anchored at a
// reference instant. Hour figures are whole minutes; day and week figures
// are hours rounded to two decimals
type Report struct {
	StoreID string `json:"store_id"`

	UptimeLastHour   int     `json:"uptime_last_hour"`
	UptimeLastDay    float64 `json:"uptime_last_day"`
	UptimeLastWeek   float64 `json:"uptime_last_week"`
	DowntimeLastHour int     `json:"downtime_last_hour"`
	DowntimeLastDay  float64 `json:"downtime_last_day"`
	DowntimeLastWeek float64 `json:"downtime_last_week"`
}

// ResolveLocation loads tz by IANA name, falling back to def when the name
// is empty or unknown. ok is false when the fallback was taken
func ResolveLocation(tz string, def *time.Location) (loc *time.Location, ok bool) {
	if tz == "" {
		return def, false
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return def, false
	}
	return loc, true
}

// BuildReport computes the three trailing windows (hour, day, week) ending
// at ref for a single store. The same timeline serves all three windows;
// each window rewinds the cursor as needed
func BuildReport(storeID string, ref time.Time, loc *time.Location, hours []HoursRow, samples []Sample) Report {
	sched := NewSchedule(hours)
	tl := NewTimeline(samples, StatusInactive)

	hour := ComputeWindow(ref.Add(-time.Hour), ref, loc, sched, tl)
	day := ComputeWindow(ref.Add(-24*time.Hour), ref, loc, sched, tl)
	week := ComputeWindow(ref.Add(-7*24*time.Hour), ref, loc, sched, tl)

	return Report{
		StoreID:          storeID,
		UptimeLastHour:   hour.UpMinutes,
		DowntimeLastHour: hour.DownMinutes,
		UptimeLastDay:    minutesToHours(day.UpMinutes),
		DowntimeLastDay:  minutesToHours(day.DownMinutes),
		UptimeLastWeek:   minutesToHours(week.UpMinutes),
		DowntimeLastWeek: minutesToHours(week.DownMinutes),
	}
}

// minutesToHours converts whole minutes to hours at two-decimal precision
func minutesToHours(min int) float64 {
	return math.Round(float64(min)/60*100) / 100
}
