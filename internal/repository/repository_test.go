package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}

	assert.NotNil(t, NewAgentRepository(pool))
	assert.NotNil(t, NewPropertyRepository(pool))
	assert.NotNil(t, NewAvailabilityRepository(pool))
	assert.NotNil(t, NewBookingRepository(pool))
	assert.NotNil(t, NewCommissionRepository(pool))
}

// The confirm transaction and the advisory pre-check both rely on
// bookedOverlapPredicate; this pins its comparisons to the domain overlap
// test on the range shapes that matter for double-booking.
func TestBookedOverlapPredicateAgreesWithDomain(t *testing.T) {
	assert.Contains(t, bookedOverlapPredicate, "start_date <= $3")
	assert.Contains(t, bookedOverlapPredicate, "end_date >= $2")

	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	}
	// start_date <= $3 AND end_date >= $2, evaluated in Go
	sqlOverlap := func(storedStart, storedEnd, qStart, qEnd time.Time) bool {
		return !storedStart.After(qEnd) && !storedEnd.Before(qStart)
	}

	tests := []struct {
		name                   string
		storedStart, storedEnd time.Time
		qStart, qEnd           time.Time
		want                   bool
	}{
		// Jun1-Jun5 booking holds nights 1..4; Jun3-Jun7 asks for 3..6
		{"overlapping bookings", day(1), day(4), day(3), day(6), true},
		// back-to-back: Jun5-Jun7 asks for nights 5..6
		{"adjacent after checkout", day(1), day(4), day(5), day(6), false},
		{"contained range", day(1), day(10), day(3), day(5), true},
		{"containing range", day(3), day(5), day(1), day(10), true},
		{"disjoint", day(1), day(2), day(20), day(25), false},
		{"touching last night", day(1), day(4), day(4), day(8), true},
		{"single night both sides", day(3), day(3), day(3), day(3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sqlOverlap(tt.storedStart, tt.storedEnd, tt.qStart, tt.qEnd)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, domain.RangesOverlap(tt.storedStart, tt.storedEnd, tt.qStart, tt.qEnd))
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "commissions_booking_id_key"}), domain.ErrDuplicate)
	assert.ErrorIs(t, translate(errors.New("connection refused")), domain.ErrPersistence)
}
