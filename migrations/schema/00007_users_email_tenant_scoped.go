package schemamigrations

import (
	"context"
	"database/sql"
)

// upUsersEmailTenantScoped reverts version 4: email uniqueness goes back to
// per-tenant. Kept in the lineage even though version 10 flips it again;
// replay must match what production went through.
func upUsersEmailTenantScoped(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_users_email_unique`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_users_tenant_email ON users (tenant_id, email)`)

	return err
}

func downUsersEmailTenantScoped(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_users_tenant_email`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_users_email_unique ON users (email)`)

	return err
}
