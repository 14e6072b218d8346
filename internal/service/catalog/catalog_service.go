package catalog

import (
	"context"
	"fmt"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/Korolev91/estatehub/internal/repository"
	"github.com/rs/zerolog"
)

type CatalogUseCase interface {
	Create(ctx context.Context, actorAgentID int64, property *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	ListActive(ctx context.Context) ([]domain.Property, error)
	Update(ctx context.Context, actorAgentID int64, property *domain.Property) error
	Delete(ctx context.Context, actorAgentID, id int64) error
}

// Cache keeps the hot unfiltered active listing out of postgres.
type Cache interface {
	GetActiveProperties(ctx context.Context) ([]domain.Property, error)
	SetActiveProperties(ctx context.Context, properties []domain.Property) error
	InvalidateActiveProperties(ctx context.Context) error
}

type CatalogService struct {
	properties repository.PropertyRepository
	cache      Cache
	log        zerolog.Logger
}

func NewCatalogService(properties repository.PropertyRepository, cache Cache, log zerolog.Logger) *CatalogService {
	return &CatalogService{properties: properties, cache: cache, log: log}
}

func (s *CatalogService) Create(ctx context.Context, actorAgentID int64, p *domain.Property) error {
	p.AgentID = actorAgentID
	if p.Status == "" {
		p.Status = domain.PropertyStatusDraft
	}
	if err := validateProperty(p); err != nil {
		return err
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Int64("property_id", p.ID).Int64("agent_id", actorAgentID).Msg("property created")
	return nil
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	return s.properties.GetByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	return s.properties.List(ctx, filter)
}

// ListActive serves the unfiltered active listing, cache-first.
func (s *CatalogService) ListActive(ctx context.Context) ([]domain.Property, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetActiveProperties(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	properties, err := s.properties.List(ctx, domain.PropertyFilter{Status: domain.PropertyStatusActive})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetActiveProperties(ctx, properties)
	}
	return properties, nil
}

// Update replaces the mutable fields of a property. Only the owning agent
// may edit it.
func (s *CatalogService) Update(ctx context.Context, actorAgentID int64, p *domain.Property) error {
	existing, err := s.properties.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.AgentID != actorAgentID {
		return fmt.Errorf("%w: property belongs to another agent", domain.ErrForbidden)
	}
	p.AgentID = existing.AgentID
	if err := validateProperty(p); err != nil {
		return err
	}
	if err := s.properties.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, actorAgentID, id int64) error {
	existing, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AgentID != actorAgentID {
		return fmt.Errorf("%w: property belongs to another agent", domain.ErrForbidden)
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Int64("property_id", id).Msg("property deleted")
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateActiveProperties(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

func validateProperty(p *domain.Property) error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if p.Location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if p.PropertyType == "" {
		return fmt.Errorf("%w: property type is required", domain.ErrValidation)
	}
	if p.ListingType != domain.ListingTypeRent && p.ListingType != domain.ListingTypeSale {
		return fmt.Errorf("%w: listing type must be RENT or SALE", domain.ErrValidation)
	}
	if p.PriceCents <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	return nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
