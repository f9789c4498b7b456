package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver for goose

	"github.com/stafferly/stafferly/internal/config"
	"github.com/stafferly/stafferly/internal/db/dsn"
	"github.com/stafferly/stafferly/internal/errs"
	schemamigrations "github.com/stafferly/stafferly/migrations/schema"
)

var (
	ErrOpenMigrationCon = errors.New("failed to open migration connection")
	ErrMigration        = errors.New("failed to run migration")
)

type Migration struct {
	Downgrade bool
}

type Migrator interface {
	MigrateToLatest(ctx context.Context, migration Migration) error
	MigrateTo(ctx context.Context, migration Migration, version int64) error
	Close() error
}

type migrator struct {
	con      *sql.DB
	provider *goose.Provider
}

// NewMigrator opens a dedicated database/sql connection and prepares a goose
// provider over the schema migration set. The schema is shared across all
// tenants; isolation is row-level, so there is a single migration lineage.
func NewMigrator(cfg *config.Config) (Migrator, error) {
	con, err := sql.Open("pgx", dsn.FromDBConfig(cfg.Database))
	if err != nil {
		return nil, errs.Wrap(ErrOpenMigrationCon, err)
	}

	provider, err := goose.NewProvider(
		database.DialectPostgres,
		con,
		nil,
		goose.WithGoMigrations(schemamigrations.GetMigrations()...),
	)
	if err != nil {
		return nil, errs.Wrap(ErrMigration, err)
	}

	return &migrator{con: con, provider: provider}, nil
}

// MigrateToLatest runs migrations onto the latest version.
// For migrations with Downgrade true, it downgrades the latest version.
func (m *migrator) MigrateToLatest(ctx context.Context, migration Migration) error {
	var err error

	if migration.Downgrade {
		_, err = m.provider.Down(ctx)
	} else {
		_, err = m.provider.Up(ctx)
	}

	if err != nil {
		return errs.Wrap(ErrMigration, err)
	}

	return nil
}

// MigrateTo runs migrations up to a specific version.
// For migrations with Downgrade true, it downgrades until the DB is at the
// specified version.
func (m *migrator) MigrateTo(ctx context.Context, migration Migration, version int64) error {
	var err error

	if migration.Downgrade {
		_, err = m.provider.DownTo(ctx, version)
	} else {
		_, err = m.provider.UpTo(ctx, version)
	}

	if err != nil {
		return errs.Wrap(ErrMigration, err)
	}

	return nil
}

func (m *migrator) Close() error {
	return m.con.Close()
}
