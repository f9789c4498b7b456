package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/stafferly/stafferly/internal/config"
	"github.com/stafferly/stafferly/internal/db"
	"github.com/stafferly/stafferly/internal/db/dsn"
	"github.com/stafferly/stafferly/internal/model"
	"github.com/stafferly/stafferly/internal/tenantctx"
)

// Tenants seeded by NewTestDB.
var TestTenants = []string{"tenant-a", "tenant-b"}

// NewTestDB provisions a fresh database in the shared postgres container,
// migrates it to the latest schema version and seeds the tenant registry.
// Each call gets its own database so tests can run in parallel.
func NewTestDB(tb testing.TB) (*gorm.DB, config.Database) {
	tb.Helper()

	var cfg config.Database

	StartPostgresSQL(tb, &cfg)

	cfg = createDatabase(tb, cfg)

	migrator, err := db.NewMigrator(&config.Config{Database: cfg})
	require.NoError(tb, err)

	tb.Cleanup(func() {
		_ = migrator.Close()
	})

	err = migrator.MigrateToLatest(tb.Context(), db.Migration{})
	require.NoError(tb, err)

	con, err := db.StartDBConnection(tb.Context(), cfg, nil)
	require.NoError(tb, err)

	for _, tenantID := range TestTenants {
		err = con.Create(&model.Tenant{
			ID:     tenantID,
			Name:   tenantID,
			Status: model.TenantActive,
		}).Error
		require.NoError(tb, err)
	}

	return con, cfg
}

// createDatabase creates a uniquely named database and returns cfg pointing
// at it.
func createDatabase(tb testing.TB, cfg config.Database) config.Database {
	tb.Helper()

	admin, err := sql.Open("pgx", dsn.FromDBConfig(cfg))
	require.NoError(tb, err)

	defer func() {
		_ = admin.Close()
	}()

	name := "stafferly_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	_, err = admin.ExecContext(tb.Context(), fmt.Sprintf(`CREATE DATABASE %q`, name))
	require.NoError(tb, err)

	cfg.Name = name

	return cfg
}

// CreateCtxWithTenant returns a context scoped to the given tenant, the way
// the request middleware would have left it.
func CreateCtxWithTenant(tenantID string) context.Context {
	return tenantctx.WithTenant(context.Background(), tenantID)
}
