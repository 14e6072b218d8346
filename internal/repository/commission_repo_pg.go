package repository

import (
	"context"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommissionRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Commission, error)
	ListForAgent(ctx context.Context, agentID int64) ([]domain.Commission, error)
	MarkPaid(ctx context.Context, id int64) (*domain.Commission, error)
}

type PGCommissionRepository struct {
	db *pgxpool.Pool
}

func NewCommissionRepository(db *pgxpool.Pool) CommissionRepository {
	return &PGCommissionRepository{db: db}
}

const commissionColumns = `id, booking_id, owner_agent_id, booking_agent_id, total_amount_cents, owner_cents, booking_cents, platform_cents, rate_percent, status, created_at`

func scanCommission(row pgx.Row) (*domain.Commission, error) {
	var c domain.Commission
	if err := row.Scan(&c.ID, &c.BookingID, &c.OwnerAgentID, &c.BookingAgentID, &c.TotalAmountCents, &c.OwnerCents, &c.BookingCents, &c.PlatformCents, &c.RatePercent, &c.Status, &c.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *PGCommissionRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Commission, error) {
	return scanCommission(r.db.QueryRow(ctx, `SELECT `+commissionColumns+` FROM commissions WHERE booking_id=$1`, bookingID))
}

func (r *PGCommissionRepository) ListForAgent(ctx context.Context, agentID int64) ([]domain.Commission, error) {
	rows, err := r.db.Query(ctx, `SELECT `+commissionColumns+` FROM commissions
		WHERE owner_agent_id=$1 OR booking_agent_id=$1 ORDER BY created_at DESC`, agentID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	commissions := make([]domain.Commission, 0)
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, *c)
	}
	return commissions, translate(rows.Err())
}

func (r *PGCommissionRepository) MarkPaid(ctx context.Context, id int64) (*domain.Commission, error) {
	return scanCommission(r.db.QueryRow(ctx, `UPDATE commissions SET status=$1 WHERE id=$2 RETURNING `+commissionColumns,
		domain.CommissionStatusPaid, id))
}

var _ CommissionRepository = (*PGCommissionRepository)(nil)
