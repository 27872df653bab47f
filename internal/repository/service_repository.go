package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/service"
)

// ServiceRepository provides data access for catalog services using pgx.
// Sub-services are embedded in a JSONB column, mirroring the document shape
// the catalog was born with.
type ServiceRepository struct {
	pool PoolInterface
}

// NewServiceRepository creates a new ServiceRepository with the given pool.
func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// NewServiceRepositoryWithPool creates a ServiceRepository with a custom
// pool interface. This is primarily used for testing.
func NewServiceRepositoryWithPool(pool PoolInterface) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// Insert inserts a new service.
func (r *ServiceRepository) Insert(ctx context.Context, svc *model.Service) error {
	subServices, err := json.Marshal(svc.SubServices)
	if err != nil {
		return fmt.Errorf("marshal sub-services: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO services (id, name, description, price, sub_services, emoji) VALUES ($1, $2, $3, $4, $5, $6)`,
		svc.ID, svc.Name, svc.Description, svc.Price, subServices, svc.Emoji)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID retrieves a service by id.
// Returns nil, nil if the service is not found.
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*model.Service, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, description, price, sub_services, emoji FROM services WHERE id = $1`, id)
	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service %s: %w", id, err)
	}
	return svc, nil
}

// List retrieves all services ordered by id, which keeps the catalog's
// fixed display order.
func (r *ServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, price, sub_services, emoji FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

// Update replaces a service's fields and sub-service list.
// Returns service.ErrServiceNotFound if no row was affected.
func (r *ServiceRepository) Update(ctx context.Context, svc *model.Service) error {
	subServices, err := json.Marshal(svc.SubServices)
	if err != nil {
		return fmt.Errorf("marshal sub-services: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE services SET name = $2, description = $3, price = $4, sub_services = $5, emoji = $6 WHERE id = $1`,
		svc.ID, svc.Name, svc.Description, svc.Price, subServices, svc.Emoji)
	if err != nil {
		return fmt.Errorf("update service %s: %w", svc.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrServiceNotFound
	}
	return nil
}

// Delete removes a service.
// Returns service.ErrServiceNotFound if no row was affected.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrServiceNotFound
	}
	return nil
}

func scanService(row pgx.Row) (*model.Service, error) {
	var svc model.Service
	var subServices []byte
	if err := row.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price, &subServices, &svc.Emoji); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subServices, &svc.SubServices); err != nil {
		return nil, fmt.Errorf("unmarshal sub-services: %w", err)
	}
	return &svc, nil
}
