package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id int64) error
}

type PGPropertyRepository struct {
	db *pgxpool.Pool
}

func NewPropertyRepository(db *pgxpool.Pool) PropertyRepository {
	return &PGPropertyRepository{db: db}
}

const propertyColumns = `id, agent_id, title, description, location, property_type, listing_type, price_cents, beds, baths, area_sqm, amenities, images, status, created_at, updated_at`

func (r *PGPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	err := r.db.QueryRow(ctx, `INSERT INTO properties (agent_id, title, description, location, property_type, listing_type, price_cents, beds, baths, area_sqm, amenities, images, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		p.AgentID, p.Title, p.Description, p.Location, p.PropertyType, p.ListingType, p.PriceCents, p.Beds, p.Baths, p.AreaSqm, p.Amenities, p.Images, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translate(err)
}

func (r *PGPropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	row := r.db.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id=$1`, id)
	var p domain.Property
	if err := row.Scan(&p.ID, &p.AgentID, &p.Title, &p.Description, &p.Location, &p.PropertyType, &p.ListingType, &p.PriceCents, &p.Beds, &p.Baths, &p.AreaSqm, &p.Amenities, &p.Images, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// List applies all set filter fields as conjunctive predicates.
func (r *PGPropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Location != "" {
		conds = append(conds, `location ILIKE `+arg("%"+filter.Location+"%"))
	}
	if filter.PropertyType != "" {
		conds = append(conds, `property_type = `+arg(filter.PropertyType))
	}
	if filter.ListingType != "" {
		conds = append(conds, `listing_type = `+arg(string(filter.ListingType)))
	}
	if filter.MinPriceCents > 0 {
		conds = append(conds, `price_cents >= `+arg(filter.MinPriceCents))
	}
	if filter.MaxPriceCents > 0 {
		conds = append(conds, `price_cents <= `+arg(filter.MaxPriceCents))
	}
	if filter.Status != "" {
		conds = append(conds, `status = `+arg(string(filter.Status)))
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.AgentID, &p.Title, &p.Description, &p.Location, &p.PropertyType, &p.ListingType, &p.PriceCents, &p.Beds, &p.Baths, &p.AreaSqm, &p.Amenities, &p.Images, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		properties = append(properties, p)
	}
	return properties, translate(rows.Err())
}

func (r *PGPropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	cmd, err := r.db.Exec(ctx, `UPDATE properties SET title=$1, description=$2, location=$3, property_type=$4, listing_type=$5, price_cents=$6, beds=$7, baths=$8, area_sqm=$9, amenities=$10, images=$11, status=$12, updated_at=now() WHERE id=$13`,
		p.Title, p.Description, p.Location, p.PropertyType, p.ListingType, p.PriceCents, p.Beds, p.Baths, p.AreaSqm, p.Amenities, p.Images, p.Status, p.ID)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPropertyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ PropertyRepository = (*PGPropertyRepository)(nil)
