package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/universocelular/unicel-server-web/internal/model"
)

// Querier is the subset of pgxpool.Pool needed by Seed.
// This allows for easier testing with mocks.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// fixedServices is the reserved service catalog. The ids are stable and
// referenced by pricing overrides, coupons and discount rules; the SIM
// unlock row carries model.SIMUnlockServiceID and is priced per carrier,
// so no row here gets a flat price. Admins set prices after first boot.
var fixedServices = []struct {
	id, name, description string
}{
	{"1", "Cuenta Google", "Eliminación de cuenta Google (FRP)."},
	{"2", "Desbloqueo IMEI", "Desbloqueo de red por IMEI."},
	{"3", "Payjoy", "Eliminación de bloqueo Payjoy."},
	{model.SIMUnlockServiceID, "Desbloqueo SIM", "Desbloqueo de red por operadora."},
	{"5", "Huawei ID", "Eliminación de Huawei ID."},
	{"6", "Xiaomi ID", "Eliminación de cuenta Mi."},
	{"7", "Liberación de iCloud", "Eliminación de cuenta iCloud."},
	{"8", "MDM", "Eliminación de perfil MDM."},
	{"9", "Reporte IMEI", "Reporte de estado del IMEI."},
}

// Seed inserts the fixed service catalog when the services table is empty.
// Safe to run on every startup; a non-empty table is left untouched so
// admin edits to the seeded rows survive restarts.
func Seed(ctx context.Context, q Querier) error {
	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&count); err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if count > 0 {
		log.Debug().Int("services", count).Msg("service catalog already seeded")
		return nil
	}

	for _, svc := range fixedServices {
		_, err := q.Exec(ctx,
			`INSERT INTO services (id, name, description) VALUES ($1, $2, $3)`,
			svc.id, svc.name, svc.description)
		if err != nil {
			return fmt.Errorf("seed service %s: %w", svc.id, err)
		}
	}
	log.Info().Int("services", len(fixedServices)).Msg("fixed service catalog seeded")
	return nil
}
