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

// CouponRepository provides data access for coupons using pgx. Codes are
// stored canonically upper-case; lookups canonicalize the input first, which
// makes them case-insensitive without any SQL functions.
type CouponRepository struct {
	pool PoolInterface
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// NewCouponRepositoryWithPool creates a CouponRepository with a custom pool
// interface. This is primarily used for testing.
func NewCouponRepositoryWithPool(pool PoolInterface) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// Insert inserts a new coupon. The code is canonicalized before storage.
// Returns service.ErrCouponExists if the code is already taken.
func (r *CouponRepository) Insert(ctx context.Context, coupon *model.Coupon) error {
	coupon.Code = model.CanonicalCode(coupon.Code)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO coupons (id, code, discount_percentage, is_active, brand_id, model_id, service_id, sub_service_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		coupon.ID, coupon.Code, coupon.DiscountPercentage, coupon.IsActive,
		coupon.BrandID, coupon.ModelID, coupon.ServiceID, coupon.SubServiceID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return service.ErrCouponExists
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByCode retrieves a coupon by its canonical code.
// Returns nil, nil if no coupon carries the code.
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	code = model.CanonicalCode(code)
	row := r.pool.QueryRow(ctx,
		`SELECT id, code, discount_percentage, is_active, brand_id, model_id, service_id, sub_service_id
		 FROM coupons WHERE code = $1`, code)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon by code %s: %w", code, err)
	}
	return coupon, nil
}

// List retrieves all coupons ordered by code.
func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, discount_percentage, is_active, brand_id, model_id, service_id, sub_service_id
		 FROM coupons ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, *coupon)
	}
	return coupons, rows.Err()
}

// Update replaces a coupon's fields. The code is canonicalized first.
// Returns service.ErrCouponNotFound if no row was affected.
func (r *CouponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	coupon.Code = model.CanonicalCode(coupon.Code)
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET code = $2, discount_percentage = $3, is_active = $4,
		 brand_id = $5, model_id = $6, service_id = $7, sub_service_id = $8 WHERE id = $1`,
		coupon.ID, coupon.Code, coupon.DiscountPercentage, coupon.IsActive,
		coupon.BrandID, coupon.ModelID, coupon.ServiceID, coupon.SubServiceID)
	if err != nil {
		return fmt.Errorf("update coupon %s: %w", coupon.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// Delete removes a coupon.
// Returns service.ErrCouponNotFound if no row was affected.
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountPercentage,
		&coupon.IsActive,
		&coupon.BrandID,
		&coupon.ModelID,
		&coupon.ServiceID,
		&coupon.SubServiceID,
	); err != nil {
		return nil, err
	}
	return &coupon, nil
}
