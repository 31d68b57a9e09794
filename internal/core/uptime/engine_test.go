package uptime

import (
	"testing"
	"time"
)

// Monday 2025-01-06 12:00 UTC
var windowStart = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

func TestComputeWindow_PartialOutage(t *testing.T) {
	// always-open store, active at window start, goes down 45 minutes in
	sched := NewSchedule(nil)
	tl := NewTimeline([]Sample{
		{At: windowStart, Status: StatusActive},
		{At: windowStart.Add(45 * time.Minute), Status: StatusInactive},
	}, StatusInactive)

	res := ComputeWindow(windowStart, windowStart.Add(time.Hour), time.UTC, sched, tl)
	if res.UpMinutes != 45 || res.DownMinutes != 15 {
		t.Fatalf("got up=%d down=%d, want 45/15", res.UpMinutes, res.DownMinutes)
	}
}

func TestComputeWindow_NoPollsCountsAsDown(t *testing.T) {
	sched := NewSchedule(nil)
	tl := NewTimeline(nil, StatusInactive)

	res := ComputeWindow(windowStart, windowStart.Add(time.Hour), time.UTC, sched, tl)
	if res.UpMinutes != 0 || res.DownMinutes != 60 {
		t.Fatalf("got up=%d down=%d, want 0/60", res.UpMinutes, res.DownMinutes)
	}
}

func TestComputeWindow_ClosedWindowContributesNothing(t *testing.T) {
	// open Tuesdays only; the window is a Monday
	sched := NewSchedule([]HoursRow{
		{Day: 1, Start: Clock(9, 0, 0), End: Clock(17, 0, 0)},
	})
	tl := NewTimeline([]Sample{
		{At: windowStart, Status: StatusActive},
	}, StatusInactive)

	res := ComputeWindow(windowStart, windowStart.Add(time.Hour), time.UTC, sched, tl)
	if res.UpMinutes != 0 || res.DownMinutes != 0 {
		t.Fatalf("got up=%d down=%d, want 0/0", res.UpMinutes, res.DownMinutes)
	}
}

func TestComputeWindow_Conservation(t *testing.T) {
	// partially-open schedule, sparse polls: up + down must equal the
	// number of in-schedule minutes
	sched := NewSchedule([]HoursRow{
		{Day: 0, Start: Clock(12, 30, 0), End: Clock(13, 30, 0)},
	})
	tl := NewTimeline([]Sample{
		{At: windowStart.Add(40 * time.Minute), Status: StatusActive},
	}, StatusInactive)

	// window 12:00-14:00, schedule covers 12:30-13:30 -> 60 open minutes
	res := ComputeWindow(windowStart, windowStart.Add(2*time.Hour), time.UTC, sched, tl)
	if got := res.OpenMinutes(); got != 60 {
		t.Fatalf("open minutes = %d, want 60", got)
	}
	// 12:30-12:40 down (default), 12:40-13:30 up
	if res.UpMinutes != 50 || res.DownMinutes != 10 {
		t.Fatalf("got up=%d down=%d, want 50/10", res.UpMinutes, res.DownMinutes)
	}
}

func TestComputeWindow_Repeatable(t *testing.T) {
	sched := NewSchedule(nil)
	tl := NewTimeline([]Sample{
		{At: windowStart.Add(20 * time.Minute), Status: StatusActive},
	}, StatusInactive)

	first := ComputeWindow(windowStart, windowStart.Add(time.Hour), time.UTC, sched, tl)
	second := ComputeWindow(windowStart, windowStart.Add(time.Hour), time.UTC, sched, tl)
	if first != second {
		t.Fatalf("same inputs gave %+v then %+v", first, second)
	}
}

func TestComputeWindow_LocalClockConversion(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 12:00 UTC on 2025-01-06 is 06:00 in Chicago (CST). A 06:00-07:00
	// local schedule should admit the first hour of the window only
	sched := NewSchedule([]HoursRow{
		{Day: 0, Start: Clock(6, 0, 0), End: Clock(7, 0, 0)},
	})
	tl := NewTimeline([]Sample{
		{At: windowStart, Status: StatusActive},
	}, StatusInactive)

	res := ComputeWindow(windowStart, windowStart.Add(2*time.Hour), chicago, sched, tl)
	if res.UpMinutes != 60 || res.DownMinutes != 0 {
		t.Fatalf("got up=%d down=%d, want 60/0", res.UpMinutes, res.DownMinutes)
	}
}

func TestComputeWindow_OvernightSchedule(t *testing.T) {
	// Monday 22:00 - Tuesday 02:00, window spans the midnight boundary
	sched := NewSchedule([]HoursRow{
		{Day: 0, Start: Clock(22, 0, 0), End: Clock(2, 0, 0)},
	})
	start := time.Date(2025, 1, 6, 21, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 7, 3, 0, 0, 0, time.UTC)
	tl := NewTimeline([]Sample{
		{At: start, Status: StatusActive},
	}, StatusInactive)

	res := ComputeWindow(start, end, time.UTC, sched, tl)
	// open 22:00-02:00 -> 240 minutes, all active
	if res.UpMinutes != 240 || res.DownMinutes != 0 {
		t.Fatalf("got up=%d down=%d, want 240/0", res.UpMinutes, res.DownMinutes)
	}
}
