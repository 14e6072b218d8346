package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// bookedOverlapPredicate matches booked rows whose inclusive [start_date,
// end_date] range intersects the inclusive [$2, $3] query range. It is the
// SQL form of domain.RangesOverlap and both confirm and the advisory
// pre-check use it, so the two sides cannot drift apart.
const bookedOverlapPredicate = `is_available=FALSE AND start_date <= $3 AND end_date >= $2`

var schema = []string{
	`CREATE TABLE IF NOT EXISTS agents (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		agency TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id BIGSERIAL PRIMARY KEY,
		agent_id BIGINT NOT NULL REFERENCES agents(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		property_type TEXT NOT NULL,
		listing_type TEXT NOT NULL,
		price_cents BIGINT NOT NULL,
		beds INT NOT NULL DEFAULT 0,
		baths INT NOT NULL DEFAULT 0,
		area_sqm DOUBLE PRECISION NOT NULL DEFAULT 0,
		amenities TEXT[] NOT NULL DEFAULT '{}',
		images TEXT[] NOT NULL DEFAULT '{}',
		status TEXT NOT NULL DEFAULT 'DRAFT',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS availability (
		id BIGSERIAL PRIMARY KEY,
		property_id BIGINT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		is_available BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		property_id BIGINT NOT NULL REFERENCES properties(id),
		owner_agent_id BIGINT NOT NULL REFERENCES agents(id),
		booking_agent_id BIGINT NOT NULL REFERENCES agents(id),
		client_name TEXT NOT NULL,
		client_email TEXT NOT NULL,
		client_phone TEXT NOT NULL DEFAULT '',
		check_in DATE NOT NULL,
		check_out DATE NOT NULL,
		total_amount_cents BIGINT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS commissions (
		id BIGSERIAL PRIMARY KEY,
		booking_id BIGINT NOT NULL UNIQUE REFERENCES bookings(id),
		owner_agent_id BIGINT NOT NULL,
		booking_agent_id BIGINT NOT NULL,
		total_amount_cents BIGINT NOT NULL,
		owner_cents BIGINT NOT NULL,
		booking_cents BIGINT NOT NULL,
		platform_cents BIGINT NOT NULL,
		rate_percent DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_availability_property ON availability(property_id, start_date, end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_property ON bookings(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_agent ON properties(agent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_status ON properties(status)`,
}

// InitSchema creates the tables and indexes if they do not exist yet.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, query := range schema {
		if _, err := pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// translate maps driver failures onto the domain error taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}
