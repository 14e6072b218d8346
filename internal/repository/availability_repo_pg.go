package repository

import (
	"context"
	"time"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository interface {
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.AvailabilityRecord, error)
	CountBookedOverlapping(ctx context.Context, propertyID int64, start, end time.Time) (int, error)
	Insert(ctx context.Context, record *domain.AvailabilityRecord) error
	DeleteExact(ctx context.Context, propertyID int64, start, end time.Time) (int64, error)
}

type PGAvailabilityRepository struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) AvailabilityRepository {
	return &PGAvailabilityRepository{db: db}
}

func (r *PGAvailabilityRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.AvailabilityRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT id, property_id, start_date, end_date, is_available, notes, created_at
		FROM availability WHERE property_id=$1`, propertyID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	records := make([]domain.AvailabilityRecord, 0)
	for rows.Next() {
		var rec domain.AvailabilityRecord
		if err := rows.Scan(&rec.ID, &rec.PropertyID, &rec.StartDate, &rec.EndDate, &rec.IsAvailable, &rec.Notes, &rec.CreatedAt); err != nil {
			return nil, translate(err)
		}
		records = append(records, rec)
	}
	return records, translate(rows.Err())
}

// CountBookedOverlapping counts booked records whose inclusive range
// intersects [start, end].
func (r *PGAvailabilityRepository) CountBookedOverlapping(ctx context.Context, propertyID int64, start, end time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM availability
		WHERE property_id=$1 AND `+bookedOverlapPredicate,
		propertyID, start, end).Scan(&count)
	return count, translate(err)
}

func (r *PGAvailabilityRepository) Insert(ctx context.Context, rec *domain.AvailabilityRecord) error {
	err := r.db.QueryRow(ctx, `INSERT INTO availability (property_id, start_date, end_date, is_available, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		rec.PropertyID, rec.StartDate, rec.EndDate, rec.IsAvailable, rec.Notes).
		Scan(&rec.ID, &rec.CreatedAt)
	return translate(err)
}

// DeleteExact removes only records matching the (start, end) pair exactly.
// Merely overlapping records are left untouched.
func (r *PGAvailabilityRepository) DeleteExact(ctx context.Context, propertyID int64, start, end time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM availability WHERE property_id=$1 AND start_date=$2 AND end_date=$3`,
		propertyID, start, end)
	if err != nil {
		return 0, translate(err)
	}
	return cmd.RowsAffected(), nil
}

var _ AvailabilityRepository = (*PGAvailabilityRepository)(nil)
