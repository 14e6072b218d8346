package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/Korolev91/estatehub/internal/repository"
	"github.com/rs/zerolog"
)

type AvailabilityUseCase interface {
	List(ctx context.Context, propertyID int64) ([]domain.AvailabilityRecord, error)
	IsRangeBooked(ctx context.Context, propertyID int64, start, end time.Time) (bool, error)
	BlockRange(ctx context.Context, actorAgentID, propertyID int64, start, end time.Time, notes string) (*domain.AvailabilityRecord, error)
	ReleaseExactRange(ctx context.Context, actorAgentID, propertyID int64, start, end time.Time) error
}

type AvailabilityService struct {
	availability repository.AvailabilityRepository
	properties   repository.PropertyRepository
	log          zerolog.Logger
}

func NewAvailabilityService(availability repository.AvailabilityRepository, properties repository.PropertyRepository, log zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{availability: availability, properties: properties, log: log}
}

func (s *AvailabilityService) List(ctx context.Context, propertyID int64) ([]domain.AvailabilityRecord, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.availability.ListByProperty(ctx, propertyID)
}

func (s *AvailabilityService) IsRangeBooked(ctx context.Context, propertyID int64, start, end time.Time) (bool, error) {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return false, err
	}
	count, err := s.availability.CountBookedOverlapping(ctx, propertyID, start, end)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BlockRange marks the inclusive [start, end] range unavailable. Only the
// owning agent may block dates on a property.
func (s *AvailabilityService) BlockRange(ctx context.Context, actorAgentID, propertyID int64, start, end time.Time, notes string) (*domain.AvailabilityRecord, error) {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.AgentID != actorAgentID {
		return nil, fmt.Errorf("%w: only the owning agent may block dates", domain.ErrForbidden)
	}

	booked, err := s.availability.CountBookedOverlapping(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}
	if booked > 0 {
		return nil, fmt.Errorf("%w: date range already booked", domain.ErrConflict)
	}

	record := &domain.AvailabilityRecord{
		PropertyID:  propertyID,
		StartDate:   start,
		EndDate:     end,
		IsAvailable: false,
		Notes:       notes,
	}
	if err := s.availability.Insert(ctx, record); err != nil {
		return nil, err
	}
	s.log.Info().Int64("property_id", propertyID).Time("start", start).Time("end", end).Msg("date range blocked")
	return record, nil
}

// ReleaseExactRange deletes only the record matching (start, end) exactly.
// A missing match is a no-op: overlapping manual blocks must survive a
// booking cancellation.
func (s *AvailabilityService) ReleaseExactRange(ctx context.Context, actorAgentID, propertyID int64, start, end time.Time) error {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return err
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property.AgentID != actorAgentID {
		return fmt.Errorf("%w: only the owning agent may release dates", domain.ErrForbidden)
	}

	deleted, err := s.availability.DeleteExact(ctx, propertyID, start, end)
	if err != nil {
		return err
	}
	if deleted == 0 {
		s.log.Debug().Int64("property_id", propertyID).Time("start", start).Time("end", end).Msg("no exact range to release")
	}
	return nil
}

func normalizeRange(start, end time.Time) (time.Time, time.Time, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if start.After(end) {
		return start, end, fmt.Errorf("%w: start date is after end date", domain.ErrValidation)
	}
	return start, end, nil
}

var _ AvailabilityUseCase = (*AvailabilityService)(nil)
