package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/service"
)

// PaymentMethodRepository provides data access for payment methods using pgx.
type PaymentMethodRepository struct {
	pool PoolInterface
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository with the
// given pool.
func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

// NewPaymentMethodRepositoryWithPool creates a PaymentMethodRepository with
// a custom pool interface. This is primarily used for testing.
func NewPaymentMethodRepositoryWithPool(pool PoolInterface) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

// Insert inserts a new payment method.
func (r *PaymentMethodRepository) Insert(ctx context.Context, pm *model.PaymentMethod) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payment_methods (id, name, country_id, emoji, is_active) VALUES ($1, $2, $3, $4, $5)`,
		pm.ID, pm.Name, pm.CountryID, pm.Emoji, pm.IsActive)
	if err != nil {
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

// List retrieves all payment methods ordered by name.
func (r *PaymentMethodRepository) List(ctx context.Context) ([]model.PaymentMethod, error) {
	return r.list(ctx, `SELECT id, name, country_id, emoji, is_active FROM payment_methods ORDER BY name`)
}

// ListActive retrieves the active payment methods ordered by name.
func (r *PaymentMethodRepository) ListActive(ctx context.Context) ([]model.PaymentMethod, error) {
	return r.list(ctx, `SELECT id, name, country_id, emoji, is_active FROM payment_methods WHERE is_active ORDER BY name`)
}

func (r *PaymentMethodRepository) list(ctx context.Context, query string) ([]model.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	methods := []model.PaymentMethod{}
	for rows.Next() {
		var pm model.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.Name, &pm.CountryID, &pm.Emoji, &pm.IsActive); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		methods = append(methods, pm)
	}
	return methods, rows.Err()
}

// Update replaces a payment method's fields.
// Returns service.ErrPaymentMethodNotFound if no row was affected.
func (r *PaymentMethodRepository) Update(ctx context.Context, pm *model.PaymentMethod) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payment_methods SET name = $2, country_id = $3, emoji = $4, is_active = $5 WHERE id = $1`,
		pm.ID, pm.Name, pm.CountryID, pm.Emoji, pm.IsActive)
	if err != nil {
		return fmt.Errorf("update payment method %s: %w", pm.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPaymentMethodNotFound
	}
	return nil
}

// Delete removes a payment method.
// Returns service.ErrPaymentMethodNotFound if no row was affected.
func (r *PaymentMethodRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment method %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPaymentMethodNotFound
	}
	return nil
}
