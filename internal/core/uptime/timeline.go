package uptime

import (
	"sort"
	"time"
)

// Status is the observed operational state of a store
type Status string

const (
	// StatusActive means the store responded as up
	StatusActive Status = "active"

	// StatusInactive means the store responded as down
	StatusInactive Status = "inactive"
)

// ParseStatus maps a raw poll string onto a Status
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	}
	return "", false
}

// Sample is a single status poll
type Sample struct {
	At     time.Time
	Status Status
}

// Timeline answers StatusAt queries over sparse samples with
// last-observation-carried-forward semantics. Instants before the first
// sample report the default status. Queries are cheapest when issued in
// ascending time order; a backward jump rewinds the cursor and stays correct
type Timeline struct {
	samples []Sample
	def     Status

	cursor int
	lastAt time.Time
	primed bool
}

// NewTimeline builds a Timeline from samples in any order.
// Samples sharing a timestamp keep their relative input order and the
// later one in that order wins for queries at or after the shared instant
func NewTimeline(samples []Sample, def Status) *Timeline {
	ordered := make([]Sample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].At.Before(ordered[j].At)
	})
	return &Timeline{samples: ordered, def: def}
}

// Len reports the number of samples
func (tl *Timeline) Len() int { return len(tl.samples) }

// StatusAt returns the status in effect at t: the status of the latest
// sample with At <= t, or the default when no sample precedes t
func (tl *Timeline) StatusAt(t time.Time) Status {
	if tl.primed && t.Before(tl.lastAt) {
		tl.cursor = 0
	}
	tl.lastAt = t
	tl.primed = true

	for tl.cursor < len(tl.samples) && !tl.samples[tl.cursor].At.After(t) {
		tl.cursor++
	}
	if tl.cursor == 0 {
		return tl.def
	}
	return tl.samples[tl.cursor-1].Status
}
