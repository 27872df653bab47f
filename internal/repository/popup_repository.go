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

// PopupRepository provides data access for pop-ups using pgx. The pop-up
// body is a JSONB document with is_active projected into a column for
// filtering; candidate order is pinned by created_at so specificity ties
// stay deterministic.
type PopupRepository struct {
	pool PoolInterface
}

// NewPopupRepository creates a new PopupRepository with the given pool.
func NewPopupRepository(pool *pgxpool.Pool) *PopupRepository {
	return &PopupRepository{pool: pool}
}

// NewPopupRepositoryWithPool creates a PopupRepository with a custom pool
// interface. This is primarily used for testing.
func NewPopupRepositoryWithPool(pool PoolInterface) *PopupRepository {
	return &PopupRepository{pool: pool}
}

// Insert inserts a new pop-up.
func (r *PopupRepository) Insert(ctx context.Context, popup *model.Popup) error {
	doc, err := json.Marshal(popup)
	if err != nil {
		return fmt.Errorf("marshal popup: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO popups (id, doc, is_active) VALUES ($1, $2, $3)`,
		popup.ID, doc, popup.IsActive)
	if err != nil {
		return fmt.Errorf("insert popup: %w", err)
	}
	return nil
}

// GetByID retrieves a pop-up by id.
// Returns nil, nil if the pop-up is not found.
func (r *PopupRepository) GetByID(ctx context.Context, id string) (*model.Popup, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM popups WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get popup %s: %w", id, err)
	}
	return unmarshalPopup(doc)
}

// List retrieves all pop-ups in creation order.
func (r *PopupRepository) List(ctx context.Context) ([]model.Popup, error) {
	return r.list(ctx, `SELECT doc FROM popups ORDER BY created_at, id`)
}

// ListActive retrieves the active pop-ups in creation order.
func (r *PopupRepository) ListActive(ctx context.Context) ([]model.Popup, error) {
	return r.list(ctx, `SELECT doc FROM popups WHERE is_active ORDER BY created_at, id`)
}

func (r *PopupRepository) list(ctx context.Context, query string) ([]model.Popup, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list popups: %w", err)
	}
	defer rows.Close()

	popups := []model.Popup{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan popup: %w", err)
		}
		popup, err := unmarshalPopup(doc)
		if err != nil {
			return nil, err
		}
		popups = append(popups, *popup)
	}
	return popups, rows.Err()
}

// Update replaces a pop-up document.
// Returns service.ErrPopupNotFound if no row was affected.
func (r *PopupRepository) Update(ctx context.Context, popup *model.Popup) error {
	doc, err := json.Marshal(popup)
	if err != nil {
		return fmt.Errorf("marshal popup: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE popups SET doc = $2, is_active = $3 WHERE id = $1`,
		popup.ID, doc, popup.IsActive)
	if err != nil {
		return fmt.Errorf("update popup %s: %w", popup.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPopupNotFound
	}
	return nil
}

// Delete removes a pop-up.
// Returns service.ErrPopupNotFound if no row was affected.
func (r *PopupRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM popups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete popup %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPopupNotFound
	}
	return nil
}

func unmarshalPopup(doc []byte) (*model.Popup, error) {
	var popup model.Popup
	if err := json.Unmarshal(doc, &popup); err != nil {
		return nil, fmt.Errorf("unmarshal popup: %w", err)
	}
	return &popup, nil
}
