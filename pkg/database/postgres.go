package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// NewPool creates a PostgreSQL connection pool with retry logic.
// Retries with exponential backoff: 1s, 2s, 4s, 8s, 16s (total ~31s before failure).
func NewPool(ctx context.Context, dsn string, maxRetries int) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Ensure at least one attempt even if maxRetries is 0
	attempts := maxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		pool, err = pgxpool.New(ctx, dsn)
		if err == nil {
			// Verify connection actually works
			if pingErr := pool.Ping(ctx); pingErr == nil {
				log.Info().Msg("database connection established")
				return pool, nil
			} else {
				pool.Close()
				err = fmt.Errorf("ping failed: %w", pingErr)
			}
		}

		backoff := time.Duration(1<<attempt) * time.Second
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Dur("next_retry_in", backoff).
			Msg("database connection failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, err)
}

// schema holds the catalog and promotion tables. JSONB columns keep the
// document shapes the data was born with: price_overrides is the tri-state
// override document (JSON null = whole model under construction), settings
// is one row holding the promotional configuration.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS brands (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS device_models (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		brand_id        TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
		category        TEXT NOT NULL,
		price_overrides JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		price        DOUBLE PRECISION,
		sub_services JSONB NOT NULL DEFAULT '[]',
		emoji        TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS coupons (
		id                  TEXT PRIMARY KEY,
		code                TEXT NOT NULL UNIQUE,
		discount_percentage DOUBLE PRECISION NOT NULL,
		is_active           BOOLEAN NOT NULL DEFAULT TRUE,
		brand_id            TEXT NOT NULL DEFAULT '',
		model_id            TEXT NOT NULL DEFAULT '',
		service_id          TEXT NOT NULL DEFAULT '',
		sub_service_id      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id  TEXT PRIMARY KEY,
		doc JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS popups (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		is_active  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payment_methods (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		country_id TEXT NOT NULL,
		emoji      TEXT NOT NULL DEFAULT '',
		is_active  BOOLEAN NOT NULL DEFAULT TRUE
	)`,
}

// Migrate applies the schema. Statements are idempotent so Migrate is safe
// to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	log.Info().Msg("database schema up to date")
	return nil
}
