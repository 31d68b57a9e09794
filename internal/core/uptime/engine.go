package uptime

import "time"

// WindowResult carries classified open-hours minutes for one time window
type WindowResult struct {
	UpMinutes   int
	DownMinutes int
}

// OpenMinutes is the total number of in-schedule minutes examined
func (w WindowResult) OpenMinutes() int { return w.UpMinutes + w.DownMinutes }

// ComputeWindow walks the half-open UTC window [start, end) in one-minute
// buckets. Buckets whose start falls inside the schedule (evaluated on the
// store's local clock) are classified up or down from the timeline; buckets
// outside business hours contribute nothing. Pure apart from cursor motion
// inside tl
func ComputeWindow(start, end time.Time, loc *time.Location, sched *Schedule, tl *Timeline) WindowResult {
	var res WindowResult
	for t := start; t.Before(end); t = t.Add(time.Minute) {
		if !sched.IsOpen(t.In(loc)) {
			continue
		}
		if tl.StatusAt(t) == StatusActive {
			res.UpMinutes++
		} else {
			res.DownMinutes++
		}
	}
	return res
}
