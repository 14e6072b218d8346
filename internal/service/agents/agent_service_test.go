package agents

import (
	"context"
	"testing"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateAgent_Success(t *testing.T) {
	mockRepo := &MockAgentRepository{}
	service := NewAgentService(mockRepo, zerolog.Nop())

	ctx := context.Background()
	agent := &domain.Agent{Name: "Maria", Email: "maria@coastal.example", Agency: "Coastal Estates"}
	mockRepo.On("Create", ctx, agent).Return(nil).Once()

	err := service.Create(ctx, agent)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCreateAgent_ValidationErrors(t *testing.T) {
	service := NewAgentService(&MockAgentRepository{}, zerolog.Nop())
	ctx := context.Background()

	testCases := []struct {
		name  string
		agent domain.Agent
	}{
		{name: "missing name", agent: domain.Agent{Email: "a@b.example"}},
		{name: "missing email", agent: domain.Agent{Name: "Maria"}},
		{name: "malformed email", agent: domain.Agent{Name: "Maria", Email: "not-an-email"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agent := tc.agent
			err := service.Create(ctx, &agent)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
