package booking

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/Korolev91/estatehub/internal/kafka"
	"github.com/Korolev91/estatehub/internal/metrics"
	"github.com/Korolev91/estatehub/internal/repository"
	"github.com/Korolev91/estatehub/internal/service/commission"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type BookingUseCase interface {
	RequestBooking(ctx context.Context, actorAgentID int64, input RequestBookingInput) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error)
	DeclineBooking(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error)
	MarkPaid(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error)
	GetBooking(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error)
	ListForAgent(ctx context.Context, agentID int64) ([]domain.Booking, error)
	ArchiveSweep(ctx context.Context, now time.Time) (int, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	properties         repository.PropertyRepository
	availability       repository.AvailabilityRepository
	producer           Producer
	log                zerolog.Logger
	ratePercent        float64
	bookingTopic       string
	notificationsTopic string
}

type RequestBookingInput struct {
	PropertyID       int64     `json:"property_id"`
	ClientName       string    `json:"client_name"`
	ClientEmail      string    `json:"client_email"`
	ClientPhone      string    `json:"client_phone"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	TotalAmountCents int64     `json:"total_amount_cents"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	properties repository.PropertyRepository,
	availability repository.AvailabilityRepository,
	producer Producer,
	log zerolog.Logger,
	ratePercent float64,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		properties:   properties,
		availability: availability,
		producer:     producer,
		log:          log,
		ratePercent:  ratePercent,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// RequestBooking creates a PENDING booking. Availability is not locked yet:
// competing pending requests for overlapping dates may coexist, and the
// first confirmation wins.
func (s *BookingService) RequestBooking(ctx context.Context, actorAgentID int64, input RequestBookingInput) (*domain.Booking, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.Status != domain.PropertyStatusActive {
		return nil, fmt.Errorf("%w: property is not active", domain.ErrConflict)
	}

	booking := &domain.Booking{
		Reference:        uuid.NewString(),
		PropertyID:       property.ID,
		OwnerAgentID:     property.AgentID,
		BookingAgentID:   actorAgentID,
		ClientName:       input.ClientName,
		ClientEmail:      input.ClientEmail,
		ClientPhone:      input.ClientPhone,
		CheckIn:          domain.DateOnly(input.CheckIn),
		CheckOut:         domain.DateOnly(input.CheckOut),
		TotalAmountCents: input.TotalAmountCents,
	}

	nightStart, nightEnd := booking.Nights()
	booked, err := s.availability.CountBookedOverlapping(ctx, property.ID, nightStart, nightEnd)
	if err != nil {
		return nil, err
	}
	if booked > 0 {
		metrics.IncConflict()
		return nil, fmt.Errorf("%w: date range already booked", domain.ErrConflict)
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_requested", booking)
	s.log.Info().Str("reference", booking.Reference).Int64("property_id", booking.PropertyID).Msg("booking requested")
	return booking, nil
}

// ConfirmBooking flips a PENDING booking to CONFIRMED. Only the owner agent
// of the property may confirm. The availability block and the commission row
// are written in the same transaction as the status change; a competing
// confirmation that took the range first fails the whole operation and the
// booking stays PENDING.
func (s *BookingService) ConfirmBooking(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.OwnerAgentID != actorAgentID {
		return nil, fmt.Errorf("%w: only the owner agent may confirm a booking", domain.ErrForbidden)
	}
	if current.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking is not pending", domain.ErrConflict)
	}

	comm, err := commission.Prepare(current, s.ratePercent)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.bookings.ConfirmWithBlock(ctx, bookingID, comm)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.IncConflict()
		}
		return nil, err
	}

	metrics.IncConfirmed()
	s.publish(ctx, "booking_confirmed", confirmed)
	s.log.Info().Str("reference", confirmed.Reference).Int64("commission_id", comm.ID).Msg("booking confirmed")
	return confirmed, nil
}

// CancelBooking is legal from PENDING or CONFIRMED, for the owner agent or
// the requesting agent. Cancelling a confirmed booking releases exactly its
// own night range; overlapping manual blocks are untouched.
func (s *BookingService) CancelBooking(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.OwnerAgentID != actorAgentID && current.BookingAgentID != actorAgentID {
		return nil, fmt.Errorf("%w: not a party to this booking", domain.ErrForbidden)
	}
	if current.Status != domain.BookingStatusPending && current.Status != domain.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking cannot be cancelled from status %s", domain.ErrConflict, current.Status)
	}

	// The guarded update only succeeds while the booking still holds the
	// status read above, so wasConfirmed cannot go stale under a racing
	// confirmation.
	wasConfirmed := current.Status == domain.BookingStatusConfirmed
	updated, err := s.bookings.UpdateStatus(ctx, bookingID, current.Status, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	if wasConfirmed {
		nightStart, nightEnd := updated.Nights()
		if _, err := s.availability.DeleteExact(ctx, updated.PropertyID, nightStart, nightEnd); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, "booking_cancelled", updated)
	s.log.Info().Str("reference", updated.Reference).Bool("was_confirmed", wasConfirmed).Msg("booking cancelled")
	return updated, nil
}

// DeclineBooking is the owner-side rejection of a PENDING request. No
// availability side effect: pending never held the range.
func (s *BookingService) DeclineBooking(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.OwnerAgentID != actorAgentID {
		return nil, fmt.Errorf("%w: only the owner agent may decline a booking", domain.ErrForbidden)
	}
	if current.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking is not pending", domain.ErrConflict)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusPending, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_declined", updated)
	s.log.Info().Str("reference", updated.Reference).Msg("booking declined")
	return updated, nil
}

// MarkPaid moves a CONFIRMED booking to PAID.
func (s *BookingService) MarkPaid(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.OwnerAgentID != actorAgentID {
		return nil, fmt.Errorf("%w: only the owner agent may mark a booking paid", domain.ErrForbidden)
	}
	if current.Status != domain.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking is not confirmed", domain.ErrConflict)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusConfirmed, domain.BookingStatusPaid)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_paid", updated)
	return updated, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerAgentID != actorAgentID && b.BookingAgentID != actorAgentID {
		return nil, fmt.Errorf("%w: not a party to this booking", domain.ErrForbidden)
	}
	return b, nil
}

func (s *BookingService) ListForAgent(ctx context.Context, agentID int64) ([]domain.Booking, error) {
	return s.bookings.ListForAgent(ctx, agentID)
}

// ArchiveSweep archives every PENDING, CONFIRMED or PAID booking whose
// checkout is already past. Safe to run repeatedly and concurrently with
// live bookings.
func (s *BookingService) ArchiveSweep(ctx context.Context, now time.Time) (int, error) {
	count, err := s.bookings.ArchiveExpiredBefore(ctx, domain.DateOnly(now))
	if err != nil {
		return 0, err
	}
	if count > 0 {
		metrics.AddArchived(count)
		s.log.Info().Int("archived", count).Msg("archive sweep completed")
	}
	return count, nil
}

func (i RequestBookingInput) validate() error {
	if i.PropertyID <= 0 {
		return fmt.Errorf("%w: property id is required", domain.ErrValidation)
	}
	if i.ClientName == "" {
		return fmt.Errorf("%w: client name is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(i.ClientEmail); err != nil {
		return fmt.Errorf("%w: client email is invalid", domain.ErrValidation)
	}
	if !domain.DateOnly(i.CheckIn).Before(domain.DateOnly(i.CheckOut)) {
		return fmt.Errorf("%w: check-in must be before check-out", domain.ErrValidation)
	}
	if i.TotalAmountCents <= 0 {
		return fmt.Errorf("%w: total amount must be positive", domain.ErrValidation)
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:             eventType,
		Reference:        b.Reference,
		BookingID:        b.ID,
		PropertyID:       b.PropertyID,
		OwnerAgentID:     b.OwnerAgentID,
		BookingAgentID:   b.BookingAgentID,
		ClientEmail:      b.ClientEmail,
		Status:           string(b.Status),
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		TotalAmountCents: b.TotalAmountCents,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, b.Reference, event); err != nil {
		s.log.Warn().Err(err).Str("reference", b.Reference).Str("type", eventType).Msg("failed to publish booking event")
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, b.Reference, event); err != nil {
			s.log.Warn().Err(err).Str("reference", b.Reference).Str("type", eventType).Msg("failed to publish notification event")
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
