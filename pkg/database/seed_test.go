package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/universocelular/unicel-server-web/internal/model"
)

// mockRow implements pgx.Row for testing the seed count query.
type mockRow struct {
	scanFn func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.scanFn != nil {
		return m.scanFn(dest...)
	}
	return nil
}

// mockQuerier implements Querier for testing.
type mockQuerier struct {
	execFn     func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (m *mockQuerier) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if m.execFn != nil {
		return m.execFn(ctx, sql, arguments...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.queryRowFn != nil {
		return m.queryRowFn(ctx, sql, args...)
	}
	return &mockRow{}
}

func countRow(count int) func(ctx context.Context, sql string, args ...any) pgx.Row {
	return func(ctx context.Context, sql string, args ...any) pgx.Row {
		return &mockRow{
			scanFn: func(dest ...any) error {
				*(dest[0].(*int)) = count
				return nil
			},
		}
	}
}

func TestSeed_EmptyCatalog(t *testing.T) {
	var insertedIDs []string
	mock := &mockQuerier{
		queryRowFn: countRow(0),
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			assert.Contains(t, sql, "INSERT INTO services")
			assert.Contains(t, sql, "$1")
			insertedIDs = append(insertedIDs, arguments[0].(string))
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	err := Seed(context.Background(), mock)

	require.NoError(t, err)
	assert.Len(t, insertedIDs, 9)
	assert.Contains(t, insertedIDs, model.SIMUnlockServiceID,
		"the carrier-priced SIM unlock service must exist after first boot")
}

func TestSeed_AlreadySeeded(t *testing.T) {
	execCalls := 0
	mock := &mockQuerier{
		queryRowFn: countRow(3),
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			execCalls++
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	err := Seed(context.Background(), mock)

	require.NoError(t, err)
	assert.Equal(t, 0, execCalls, "a non-empty catalog is left untouched")
}

func TestSeed_CountError(t *testing.T) {
	dbErr := errors.New("connection refused")
	mock := &mockQuerier{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &mockRow{scanFn: func(dest ...any) error { return dbErr }}
		},
	}

	err := Seed(context.Background(), mock)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "count services")
	assert.True(t, errors.Is(err, dbErr), "should wrap original error")
}

func TestSeed_InsertError(t *testing.T) {
	dbErr := errors.New("connection refused")
	mock := &mockQuerier{
		queryRowFn: countRow(0),
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, dbErr
		},
	}

	err := Seed(context.Background(), mock)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed service")
	assert.True(t, errors.Is(err, dbErr), "should wrap original error")
}
