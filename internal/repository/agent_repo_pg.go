package repository

import (
	"context"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
	Update(ctx context.Context, agent *domain.Agent) error
	Delete(ctx context.Context, id int64) error
}

type PGAgentRepository struct {
	db *pgxpool.Pool
}

func NewAgentRepository(db *pgxpool.Pool) AgentRepository {
	return &PGAgentRepository{db: db}
}

func (r *PGAgentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	err := r.db.QueryRow(ctx, `INSERT INTO agents (name, email, phone, agency)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`, agent.Name, agent.Email, agent.Phone, agent.Agency).
		Scan(&agent.ID, &agent.CreatedAt, &agent.UpdatedAt)
	return translate(err)
}

func (r *PGAgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, phone, agency, created_at, updated_at FROM agents WHERE id=$1`, id)
	var a domain.Agent
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Agency, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *PGAgentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, phone, agency, created_at, updated_at FROM agents ORDER BY id`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	agents := make([]domain.Agent, 0)
	for rows.Next() {
		var a domain.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Agency, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		agents = append(agents, a)
	}
	return agents, translate(rows.Err())
}

func (r *PGAgentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	cmd, err := r.db.Exec(ctx, `UPDATE agents SET name=$1, email=$2, phone=$3, agency=$4, updated_at=now() WHERE id=$5`,
		agent.Name, agent.Email, agent.Phone, agent.Agency, agent.ID)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAgentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM agents WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AgentRepository = (*PGAgentRepository)(nil)
