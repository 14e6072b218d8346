package agents

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/Korolev91/estatehub/internal/repository"
	"github.com/rs/zerolog"
)

type AgentUseCase interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
	Update(ctx context.Context, agent *domain.Agent) error
	Delete(ctx context.Context, id int64) error
}

type AgentService struct {
	agents repository.AgentRepository
	log    zerolog.Logger
}

func NewAgentService(agents repository.AgentRepository, log zerolog.Logger) *AgentService {
	return &AgentService{agents: agents, log: log}
}

func (s *AgentService) Create(ctx context.Context, agent *domain.Agent) error {
	if err := validateAgent(agent); err != nil {
		return err
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		return err
	}
	s.log.Info().Int64("agent_id", agent.ID).Str("agency", agent.Agency).Msg("agent registered")
	return nil
}

func (s *AgentService) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	return s.agents.GetByID(ctx, id)
}

func (s *AgentService) List(ctx context.Context) ([]domain.Agent, error) {
	return s.agents.List(ctx)
}

func (s *AgentService) Update(ctx context.Context, agent *domain.Agent) error {
	if err := validateAgent(agent); err != nil {
		return err
	}
	return s.agents.Update(ctx, agent)
}

func (s *AgentService) Delete(ctx context.Context, id int64) error {
	return s.agents.Delete(ctx, id)
}

func validateAgent(agent *domain.Agent) error {
	if agent.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(agent.Email); err != nil {
		return fmt.Errorf("%w: email is invalid", domain.ErrValidation)
	}
	return nil
}

var _ AgentUseCase = (*AgentService)(nil)
