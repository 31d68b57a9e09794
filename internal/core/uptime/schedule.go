// Package uptime computes open-hours uptime and downtime for stores from
// weekly schedules and sparse status polls
package uptime

import (
	"fmt"
	"time"
)

// ClockTime is a local wall-clock instant as seconds since midnight
type ClockTime int

// Clock builds a ClockTime from hour, minute, second
func Clock(h, m, s int) ClockTime { return ClockTime(h*3600 + m*60 + s) }

// ParseClock parses "HH:MM:SS" (or "HH:MM") into a ClockTime
func ParseClock(s string) (ClockTime, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		sec = 0
		if _, err2 := fmt.Sscanf(s, "%d:%d", &h, &m); err2 != nil {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return Clock(h, m, sec), nil
}

// String renders HH:MM:SS
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(c)/3600, int(c)/60%60, int(c)%60)
}

// HoursRow is one weekly business-hours interval
// Day is 0=Monday .. 6=Sunday; an interval with Start > End wraps past midnight
// into the following day
type HoursRow struct {
	Day   int
	Start ClockTime
	End   ClockTime
}

// Schedule answers open/closed questions for local instants.
// A schedule built from zero rows is open 24x7. Overlapping rows are OR-ed,
// never merged or rejected
type Schedule struct {
	byDay  [7][]HoursRow
	always bool
}

// NewSchedule builds a Schedule from weekly rows. Rows with a day outside
// 0..6 are ignored
func NewSchedule(rows []HoursRow) *Schedule {
	s := &Schedule{always: len(rows) == 0}
	for _, r := range rows {
		if r.Day < 0 || r.Day > 6 {
			continue
		}
		s.byDay[r.Day] = append(s.byDay[r.Day], r)
	}
	return s
}

// AlwaysOpen reports whether the schedule had no rows at all
func (s *Schedule) AlwaysOpen() bool { return s.always }

// weekdayOf maps Go's Sunday=0 weekday onto the 0=Monday convention
func weekdayOf(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }

// IsOpen reports whether the store is open at the given local instant.
// The caller converts to the store's location first; only the wall clock
// and weekday of t are consulted
func (s *Schedule) IsOpen(local time.Time) bool {
	if s.always {
		return true
	}
	day := weekdayOf(local)
	tod := Clock(local.Hour(), local.Minute(), local.Second())

	for _, r := range s.byDay[day] {
		if r.Start <= r.End {
			// same-day interval, half-open [Start, End)
			if tod >= r.Start && tod < r.End {
				return true
			}
		} else if tod >= r.Start {
			// overnight interval covers Start..midnight on its own day
			return true
		}
	}

	// overnight spill from the previous day covers midnight..End
	prev := (day + 6) % 7
	for _, r := range s.byDay[prev] {
		if r.Start > r.End && tod < r.End {
			return true
		}
	}
	return false
}
