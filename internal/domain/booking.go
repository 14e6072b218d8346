package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusArchived  BookingStatus = "ARCHIVED"
)

type Booking struct {
	ID               int64         `json:"id"`
	Reference        string        `json:"reference"`
	PropertyID       int64         `json:"property_id"`
	OwnerAgentID     int64         `json:"owner_agent_id"`
	BookingAgentID   int64         `json:"booking_agent_id"`
	ClientName       string        `json:"client_name"`
	ClientEmail      string        `json:"client_email"`
	ClientPhone      string        `json:"client_phone"`
	CheckIn          time.Time     `json:"check_in"`
	CheckOut         time.Time     `json:"check_out"`
	TotalAmountCents int64         `json:"total_amount_cents"`
	Status           BookingStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Nights returns the inclusive night range the booking occupies.
// The checkout day itself stays free for a new check-in.
func (b *Booking) Nights() (start, end time.Time) {
	return DateOnly(b.CheckIn), DateOnly(b.CheckOut).AddDate(0, 0, -1)
}

// DateOnly normalizes a timestamp to UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
