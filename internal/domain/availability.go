package domain

import "time"

// AvailabilityRecord marks an inclusive date range on a property.
// IsAvailable=false means the nights are booked or manually blocked.
type AvailabilityRecord struct {
	ID          int64     `json:"id"`
	PropertyID  int64     `json:"property_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsAvailable bool      `json:"is_available"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// RangesOverlap reports whether two inclusive date ranges intersect.
func RangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return !start1.After(end2) && !start2.After(end1)
}
