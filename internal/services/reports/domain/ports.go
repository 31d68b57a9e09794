package domain

import "context"

// ServicePort defines the service contract for reports
type ServicePort interface {
	// Trigger queues a report run for a store and returns its id
	Trigger(ctx context.Context, storeID string) (TriggerResult, error)

	// Get returns a report run by id, including the CSV when complete
	Get(ctx context.Context, reportID string) (Report, error)
}

// RunnerPort is the background worker surface started from main
type RunnerPort interface {
	Run(ctx context.Context) error
}
