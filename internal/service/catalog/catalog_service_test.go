package catalog

import (
	"context"
	"testing"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetActiveProperties(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockCache) SetActiveProperties(ctx context.Context, properties []domain.Property) error {
	args := m.Called(ctx, properties)
	return args.Error(0)
}

func (m *MockCache) InvalidateActiveProperties(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validProperty() *domain.Property {
	return &domain.Property{
		ID:           5,
		AgentID:      1,
		Title:        "Seafront apartment",
		Location:     "Limassol",
		PropertyType: "apartment",
		ListingType:  domain.ListingTypeRent,
		PriceCents:   120000,
		Status:       domain.PropertyStatusActive,
	}
}

func TestListActive_CacheHit(t *testing.T) {
	mockRepo := &MockPropertyRepository{}
	mockCache := &MockCache{}
	service := NewCatalogService(mockRepo, mockCache, zerolog.Nop())

	ctx := context.Background()
	cached := []domain.Property{*validProperty()}
	mockCache.On("GetActiveProperties", ctx).Return(cached, nil).Once()

	properties, err := service.ListActive(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, properties)
	mockRepo.AssertNotCalled(t, "List")
}

func TestListActive_CacheMissFillsCache(t *testing.T) {
	mockRepo := &MockPropertyRepository{}
	mockCache := &MockCache{}
	service := NewCatalogService(mockRepo, mockCache, zerolog.Nop())

	ctx := context.Background()
	fromDB := []domain.Property{*validProperty()}
	mockCache.On("GetActiveProperties", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx, domain.PropertyFilter{Status: domain.PropertyStatusActive}).Return(fromDB, nil).Once()
	mockCache.On("SetActiveProperties", ctx, fromDB).Return(nil).Once()

	properties, err := service.ListActive(ctx)

	assert.NoError(t, err)
	assert.Equal(t, fromDB, properties)
	mockCache.AssertExpectations(t)
}

func TestCreate_SetsOwnerAndInvalidates(t *testing.T) {
	mockRepo := &MockPropertyRepository{}
	mockCache := &MockCache{}
	service := NewCatalogService(mockRepo, mockCache, zerolog.Nop())

	ctx := context.Background()
	property := validProperty()
	property.AgentID = 0
	mockRepo.On("Create", ctx, property).Return(nil).Once()
	mockCache.On("InvalidateActiveProperties", ctx).Return(nil).Once()

	err := service.Create(ctx, 7, property)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), property.AgentID)
	mockCache.AssertExpectations(t)
}

func TestCreate_ValidationErrors(t *testing.T) {
	service := NewCatalogService(&MockPropertyRepository{}, &MockCache{}, zerolog.Nop())
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*domain.Property)
	}{
		{name: "missing title", mutate: func(p *domain.Property) { p.Title = "" }},
		{name: "missing location", mutate: func(p *domain.Property) { p.Location = "" }},
		{name: "missing type", mutate: func(p *domain.Property) { p.PropertyType = "" }},
		{name: "bad listing type", mutate: func(p *domain.Property) { p.ListingType = "LEASE" }},
		{name: "zero price", mutate: func(p *domain.Property) { p.PriceCents = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			property := validProperty()
			tc.mutate(property)
			err := service.Create(ctx, 1, property)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestUpdate_NotOwner(t *testing.T) {
	mockRepo := &MockPropertyRepository{}
	service := NewCatalogService(mockRepo, &MockCache{}, zerolog.Nop())

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, int64(5)).Return(validProperty(), nil).Once()

	err := service.Update(ctx, 2, validProperty())

	assert.ErrorIs(t, err, domain.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestDelete_NotOwner(t *testing.T) {
	mockRepo := &MockPropertyRepository{}
	service := NewCatalogService(mockRepo, &MockCache{}, zerolog.Nop())

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, int64(5)).Return(validProperty(), nil).Once()

	err := service.Delete(ctx, 2, 5)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete")
}
