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

// ModelRepository provides data access for device models using pgx. The
// price_overrides column is JSONB holding the tri-state override document;
// the JSON literal null encodes the bulk under-construction flag, so the
// column itself is never SQL NULL.
type ModelRepository struct {
	pool PoolInterface
}

// NewModelRepository creates a new ModelRepository with the given pool.
func NewModelRepository(pool *pgxpool.Pool) *ModelRepository {
	return &ModelRepository{pool: pool}
}

// NewModelRepositoryWithPool creates a ModelRepository with a custom pool
// interface. This is primarily used for testing.
func NewModelRepositoryWithPool(pool PoolInterface) *ModelRepository {
	return &ModelRepository{pool: pool}
}

// Insert inserts a new device model.
func (r *ModelRepository) Insert(ctx context.Context, m *model.DeviceModel) error {
	overrides, err := json.Marshal(m.Overrides)
	if err != nil {
		return fmt.Errorf("marshal overrides: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO device_models (id, name, brand_id, category, price_overrides) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.BrandID, string(m.Category), overrides)
	if err != nil {
		return fmt.Errorf("insert model: %w", err)
	}
	return nil
}

// GetByID retrieves a device model by id.
// Returns nil, nil if the model is not found.
func (r *ModelRepository) GetByID(ctx context.Context, id string) (*model.DeviceModel, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, brand_id, category, price_overrides FROM device_models WHERE id = $1`, id)
	m, err := scanModel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get model %s: %w", id, err)
	}
	return m, nil
}

// List retrieves all device models ordered by name. Brand filtering happens
// in the service layer against the cached snapshot.
func (r *ModelRepository) List(ctx context.Context) ([]model.DeviceModel, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, brand_id, category, price_overrides FROM device_models ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	models := []model.DeviceModel{}
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		models = append(models, *m)
	}
	return models, rows.Err()
}

// Update renames or recategorizes a device model.
// Returns service.ErrModelNotFound if no row was affected.
func (r *ModelRepository) Update(ctx context.Context, m *model.DeviceModel) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE device_models SET name = $2, category = $3 WHERE id = $1`,
		m.ID, m.Name, string(m.Category))
	if err != nil {
		return fmt.Errorf("update model %s: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrModelNotFound
	}
	return nil
}

// UpdateOverrides replaces the whole override document for a model.
// Returns service.ErrModelNotFound if no row was affected.
func (r *ModelRepository) UpdateOverrides(ctx context.Context, id string, overrides model.OverrideSet) error {
	doc, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("marshal overrides: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE device_models SET price_overrides = $2 WHERE id = $1`,
		id, doc)
	if err != nil {
		return fmt.Errorf("update overrides %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrModelNotFound
	}
	return nil
}

// Delete removes a device model.
// Returns service.ErrModelNotFound if no row was affected.
func (r *ModelRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM device_models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete model %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrModelNotFound
	}
	return nil
}

func scanModel(row pgx.Row) (*model.DeviceModel, error) {
	var m model.DeviceModel
	var category string
	var overrides []byte
	if err := row.Scan(&m.ID, &m.Name, &m.BrandID, &category, &overrides); err != nil {
		return nil, err
	}
	m.Category = model.Category(category)
	if err := json.Unmarshal(overrides, &m.Overrides); err != nil {
		return nil, fmt.Errorf("unmarshal overrides: %w", err)
	}
	return &m, nil
}
