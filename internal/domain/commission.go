package domain

import "time"

type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "PENDING"
	CommissionStatusPaid    CommissionStatus = "PAID"
)

// Commission is an immutable ledger entry created once, when its booking is
// confirmed. OwnerCents + BookingCents + PlatformCents == TotalAmountCents.
type Commission struct {
	ID               int64            `json:"id"`
	BookingID        int64            `json:"booking_id"`
	OwnerAgentID     int64            `json:"owner_agent_id"`
	BookingAgentID   int64            `json:"booking_agent_id"`
	TotalAmountCents int64            `json:"total_amount_cents"`
	OwnerCents       int64            `json:"owner_cents"`
	BookingCents     int64            `json:"booking_cents"`
	PlatformCents    int64            `json:"platform_cents"`
	RatePercent      float64          `json:"rate_percent"`
	Status           CommissionStatus `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
}
