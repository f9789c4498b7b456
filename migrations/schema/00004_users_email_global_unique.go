package schemamigrations

import (
	"context"
	"database/sql"
)

// upUsersEmailGlobalUnique replaces the tenant-scoped email uniqueness with
// a global one: an email identifies one account across all tenants. This is
// orthogonal to the composite-FK work but lives in the same lineage; see
// versions 7 and 10 for the later flips.
func upUsersEmailGlobalUnique(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_users_tenant_email`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_users_email_unique ON users (email)`)

	return err
}

func downUsersEmailGlobalUnique(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_users_email_unique`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_users_tenant_email ON users (tenant_id, email)`)

	return err
}
