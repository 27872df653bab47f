package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/universocelular/unicel-server-web/internal/model"
)

// settingsRowID is the key of the single settings row.
const settingsRowID = "global"

// SettingsRepository provides access to the singleton settings document,
// stored as one JSONB row.
type SettingsRepository struct {
	pool PoolInterface
}

// NewSettingsRepository creates a new SettingsRepository with the given pool.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// NewSettingsRepositoryWithPool creates a SettingsRepository with a custom
// pool interface. This is primarily used for testing.
func NewSettingsRepositoryWithPool(pool PoolInterface) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get retrieves the settings document.
// Returns nil, nil if the document has never been saved; the service layer
// substitutes the defaults.
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx,
		`SELECT doc FROM settings WHERE id = $1`, settingsRowID).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	var settings model.Settings
	if err := json.Unmarshal(doc, &settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &settings, nil
}

// Save upserts the settings document.
func (r *SettingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO settings (id, doc) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		settingsRowID, doc)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
