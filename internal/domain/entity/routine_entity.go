package entity

import "time"

// CollectionRoutine is a neighborhood waste-collection schedule entry.
// Hours are stored as "HH:MM" strings and weekdays as a comma-separated
// list, matching what the mobile client submits.
type CollectionRoutine struct {
	ID           int64
	Neighborhood string
	StartHour    string
	EndHour      string
	Weekdays     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
