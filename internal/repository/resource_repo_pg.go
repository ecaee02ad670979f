package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neighbourgood/booking/internal/domain"
)

// ResourceRepository is the read-only view over the catalog's resource
// table. Catalog writes belong to the catalog service, not here.
type ResourceRepository interface {
	List(ctx context.Context) ([]domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

type PGResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) ResourceRepository {
	return &PGResourceRepository{db: db}
}

func (r *PGResourceRepository) List(ctx context.Context) ([]domain.Resource, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, description, category, owner_id, is_available, created_at, updated_at FROM resources ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := make([]domain.Resource, 0)
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.Description, &res.Category, &res.OwnerID, &res.IsAvailable, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *PGResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	row := r.db.QueryRow(ctx, `SELECT id, title, description, category, owner_id, is_available, created_at, updated_at FROM resources WHERE id=$1`, id)
	var res domain.Resource
	if err := row.Scan(&res.ID, &res.Title, &res.Description, &res.Category, &res.OwnerID, &res.IsAvailable, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("resource %d", id)
		}
		return nil, err
	}
	return &res, nil
}

var _ ResourceRepository = (*PGResourceRepository)(nil)
