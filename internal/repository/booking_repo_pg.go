package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListForAgent(ctx context.Context, agentID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error)
	ConfirmWithBlock(ctx context.Context, bookingID int64, commission *domain.Commission) (*domain.Booking, error)
	ArchiveExpiredBefore(ctx context.Context, deadline time.Time) (int, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, reference, property_id, owner_agent_id, booking_agent_id, client_name, client_email, client_phone, check_in, check_out, total_amount_cents, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.PropertyID, &b.OwnerAgentID, &b.BookingAgentID, &b.ClientName, &b.ClientEmail, &b.ClientPhone, &b.CheckIn, &b.CheckOut, &b.TotalAmountCents, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	b.Status = domain.BookingStatusPending
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (reference, property_id, owner_agent_id, booking_agent_id, client_name, client_email, client_phone, check_in, check_out, total_amount_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		b.Reference, b.PropertyID, b.OwnerAgentID, b.BookingAgentID, b.ClientName, b.ClientEmail, b.ClientPhone, b.CheckIn, b.CheckOut, b.TotalAmountCents, b.Status).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	return translate(err)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
}

func (r *PGBookingRepository) ListForAgent(ctx context.Context, agentID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE owner_agent_id=$1 OR booking_agent_id=$1 ORDER BY created_at DESC`, agentID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, translate(rows.Err())
}

// UpdateStatus flips the booking from one status to another in a single
// guarded UPDATE. A row that is no longer in the expected status matches
// nothing, so a concurrent transition surfaces as ErrConflict instead of
// being silently overwritten.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3 RETURNING `+bookingColumns, to, id, from))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: booking is no longer %s", domain.ErrConflict, from)
		}
		return nil, err
	}
	return b, nil
}

// ConfirmWithBlock runs the whole confirmation as one transaction: it locks
// the property row, re-checks the night range for overlap, writes the
// availability record, flips the booking to CONFIRMED and inserts the
// commission. A competing confirmation that got there first surfaces as
// domain.ErrConflict and leaves the booking PENDING.
func (r *PGBookingRepository) ConfirmWithBlock(ctx context.Context, bookingID int64, commission *domain.Commission) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, translate(err)
	}
	defer tx.Rollback(ctx)

	booking, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, bookingID))
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, domain.ErrConflict
	}

	// Per-property serialization point for the read-then-write below.
	var propertyID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM properties WHERE id=$1 FOR UPDATE`, booking.PropertyID).Scan(&propertyID); err != nil {
		return nil, translate(err)
	}

	nightStart, nightEnd := booking.Nights()
	var overlapping int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM availability
		WHERE property_id=$1 AND `+bookedOverlapPredicate,
		booking.PropertyID, nightStart, nightEnd).Scan(&overlapping); err != nil {
		return nil, translate(err)
	}
	if overlapping > 0 {
		return nil, domain.ErrConflict
	}

	if _, err := tx.Exec(ctx, `INSERT INTO availability (property_id, start_date, end_date, is_available, notes)
		VALUES ($1, $2, $3, FALSE, $4)`,
		booking.PropertyID, nightStart, nightEnd, "booking "+booking.Reference); err != nil {
		return nil, translate(err)
	}

	// Guarded flip: a cancel that committed after our read above matches
	// nothing here and the whole confirmation rolls back.
	booking, err = scanBooking(tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3 RETURNING `+bookingColumns,
		domain.BookingStatusConfirmed, bookingID, domain.BookingStatusPending))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO commissions (booking_id, owner_agent_id, booking_agent_id, total_amount_cents, owner_cents, booking_cents, platform_cents, rate_percent, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		booking.ID, commission.OwnerAgentID, commission.BookingAgentID, commission.TotalAmountCents, commission.OwnerCents, commission.BookingCents, commission.PlatformCents, commission.RatePercent, domain.CommissionStatusPending).
		Scan(&commission.ID, &commission.CreatedAt); err != nil {
		return nil, translate(err)
	}
	commission.BookingID = booking.ID
	commission.Status = domain.CommissionStatusPending

	if err := tx.Commit(ctx); err != nil {
		return nil, translate(err)
	}
	return booking, nil
}

// ArchiveExpiredBefore moves every still-live booking whose checkout has
// passed to ARCHIVED. Idempotent: archived rows never match again.
func (r *PGBookingRepository) ArchiveExpiredBefore(ctx context.Context, deadline time.Time) (int, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE status = ANY($2) AND check_out < $3`,
		domain.BookingStatusArchived,
		[]string{string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed), string(domain.BookingStatusPaid)},
		deadline)
	if err != nil {
		return 0, translate(err)
	}
	return int(cmd.RowsAffected()), nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
