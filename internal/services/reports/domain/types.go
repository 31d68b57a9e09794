// Package domain holds types for report generation contracts
package domain

import "time"

// State is the lifecycle state of a report run
type State string

const (
	// StatePending means the report is queued and not yet picked up
	StatePending State = "pending"

	// StateRunning means a worker is computing the report
	StateRunning State = "running"

	// StateComplete means the CSV artifact is ready
	StateComplete State = "complete"

	// StateFailed means computation failed; the artifact is gone for good
	StateFailed State = "failed"
)

// Report is one report run with its artifact when complete
type Report struct {
	ID          string     `json:"report_id"`
	StoreID     string     `json:"store_id"`
	State       State      `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ReferenceAt *time.Time `json:"reference_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	CSV         string     `json:"-"`
}

// TriggerResult is the accepted-trigger payload
type TriggerResult struct {
	ReportID string `json:"report_id"`
}
