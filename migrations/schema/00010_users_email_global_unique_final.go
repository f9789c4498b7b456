package schemamigrations

import (
	"context"
	"database/sql"
)

// upUsersEmailGlobalUniqueFinal is the settled state: one email, one account,
// across all tenants. Product decision: accounts are platform-wide logins
// that can be invited into tenants, so a duplicate email across tenants
// would mean two credentials for one identity.
func upUsersEmailGlobalUniqueFinal(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_users_tenant_email`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_users_email_unique ON users (email)`)

	return err
}

func downUsersEmailGlobalUniqueFinal(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_users_email_unique`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_users_tenant_email ON users (tenant_id, email)`)

	return err
}
