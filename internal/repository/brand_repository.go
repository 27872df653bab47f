package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/service"
)

// BrandRepository provides data access for brands using pgx.
type BrandRepository struct {
	pool PoolInterface
}

// NewBrandRepository creates a new BrandRepository with the given pool.
func NewBrandRepository(pool *pgxpool.Pool) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// NewBrandRepositoryWithPool creates a BrandRepository with a custom pool
// interface. This is primarily used for testing.
func NewBrandRepositoryWithPool(pool PoolInterface) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// Insert inserts a new brand.
// Returns service.ErrBrandExists if the name is already taken.
func (r *BrandRepository) Insert(ctx context.Context, brand *model.Brand) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO brands (id, name) VALUES ($1, $2)`,
		brand.ID, brand.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return service.ErrBrandExists
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID retrieves a brand by id.
// Returns nil, nil if the brand is not found.
func (r *BrandRepository) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	var brand model.Brand
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM brands WHERE id = $1`, id).
		Scan(&brand.ID, &brand.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand %s: %w", id, err)
	}
	return &brand, nil
}

// List retrieves all brands ordered by name.
func (r *BrandRepository) List(ctx context.Context) ([]model.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []model.Brand{}
	for rows.Next() {
		var brand model.Brand
		if err := rows.Scan(&brand.ID, &brand.Name); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}

// Update renames a brand.
// Returns service.ErrBrandNotFound if no row was affected.
func (r *BrandRepository) Update(ctx context.Context, brand *model.Brand) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE brands SET name = $2 WHERE id = $1`,
		brand.ID, brand.Name)
	if err != nil {
		return fmt.Errorf("update brand %s: %w", brand.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrBrandNotFound
	}
	return nil
}

// Delete removes a brand.
// Returns service.ErrBrandNotFound if no row was affected.
func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrBrandNotFound
	}
	return nil
}
