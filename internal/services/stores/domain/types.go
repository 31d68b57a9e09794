// Package domain holds types shared by the stores http, service, and consumer contracts
package domain

import (
	"time"

	"storewatch/internal/core/uptime"
)

// Store is a monitored store and its IANA timezone
type Store struct {
	ID       string `json:"store_id"`
	Timezone string `json:"timezone_str"`
}

// SearchInput is the input for listing stores
type SearchInput struct {
	Limit  int `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
	Offset int `json:"offset,omitempty" validate:"omitempty,min=0" example:"0"`
}

// TimezoneRecord is one row of the timezone feed
type TimezoneRecord struct {
	StoreID  string
	Timezone string
}

// HoursRecord is one row of the business hours feed in local wall-clock time
type HoursRecord struct {
	StoreID string
	Day     int
	Start   uptime.ClockTime
	End     uptime.ClockTime
}

// PollRecord is one observed status poll in UTC
type PollRecord struct {
	StoreID string
	At      time.Time
	Status  uptime.Status
}
