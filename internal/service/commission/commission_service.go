package commission

import (
	"context"
	"fmt"
	"math"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/Korolev91/estatehub/internal/repository"
	"github.com/rs/zerolog"
)

type CommissionUseCase interface {
	GetForBooking(ctx context.Context, bookingID int64) (*domain.Commission, error)
	ListForAgent(ctx context.Context, agentID int64) ([]domain.Commission, error)
	MarkPaid(ctx context.Context, id int64) (*domain.Commission, error)
}

// Split is the three-way division of a booking's total amount.
type Split struct {
	OwnerCents    int64
	BookingCents  int64
	PlatformCents int64
}

// ComputeSplit divides totalCents between the platform and the two agents.
// The platform takes ratePercent of the total, rounded half-up to a cent.
// The remainder goes fully to the owner on a self-booking, otherwise it is
// split 50/50 with the odd cent going to the owner. The three parts always
// sum to totalCents exactly.
func ComputeSplit(totalCents int64, ratePercent float64, ownerAgentID, bookingAgentID int64) (Split, error) {
	if totalCents <= 0 {
		return Split{}, fmt.Errorf("%w: total amount must be positive", domain.ErrValidation)
	}
	if ratePercent < 0 || ratePercent > 100 {
		return Split{}, fmt.Errorf("%w: commission rate must be within [0, 100]", domain.ErrValidation)
	}

	platform := roundHalfUp(float64(totalCents) * ratePercent / 100)
	remainder := totalCents - platform

	var owner, booking int64
	if ownerAgentID == bookingAgentID {
		owner = remainder
	} else {
		owner = (remainder + 1) / 2
		booking = remainder - owner
	}

	return Split{OwnerCents: owner, BookingCents: booking, PlatformCents: platform}, nil
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// Prepare builds the commission row inserted alongside a booking's
// confirmation.
func Prepare(booking *domain.Booking, ratePercent float64) (*domain.Commission, error) {
	split, err := ComputeSplit(booking.TotalAmountCents, ratePercent, booking.OwnerAgentID, booking.BookingAgentID)
	if err != nil {
		return nil, err
	}
	return &domain.Commission{
		BookingID:        booking.ID,
		OwnerAgentID:     booking.OwnerAgentID,
		BookingAgentID:   booking.BookingAgentID,
		TotalAmountCents: booking.TotalAmountCents,
		OwnerCents:       split.OwnerCents,
		BookingCents:     split.BookingCents,
		PlatformCents:    split.PlatformCents,
		RatePercent:      ratePercent,
		Status:           domain.CommissionStatusPending,
	}, nil
}

type CommissionService struct {
	commissions repository.CommissionRepository
	log         zerolog.Logger
}

func NewCommissionService(commissions repository.CommissionRepository, log zerolog.Logger) *CommissionService {
	return &CommissionService{commissions: commissions, log: log}
}

func (s *CommissionService) GetForBooking(ctx context.Context, bookingID int64) (*domain.Commission, error) {
	return s.commissions.GetByBookingID(ctx, bookingID)
}

func (s *CommissionService) ListForAgent(ctx context.Context, agentID int64) ([]domain.Commission, error) {
	return s.commissions.ListForAgent(ctx, agentID)
}

func (s *CommissionService) MarkPaid(ctx context.Context, id int64) (*domain.Commission, error) {
	paid, err := s.commissions.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("commission_id", paid.ID).Int64("booking_id", paid.BookingID).Msg("commission paid out")
	return paid, nil
}

var _ CommissionUseCase = (*CommissionService)(nil)
