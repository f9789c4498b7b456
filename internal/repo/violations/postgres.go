package violations

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// see https://www.postgresql.org/docs/14/errcodes-appendix.html
const (
	pgUniqueViolationErrCode     = "23505"
	pgForeignKeyViolationErrCode = "23503"
)

// Composite tenant foreign keys follow the fk_<child>_<parent>_tenant naming
// convention set by the schema migrations.
const tenantFKSuffix = "_tenant"

// IsUniqueConstraint checks if the error is a PostgreSQL unique constraint violation
func IsUniqueConstraint(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgUniqueViolationErrCode
}

// IsCrossTenantReference checks if the error is a foreign key violation on
// one of the composite (fk, tenant_id) constraints, meaning a row referenced
// a parent owned by a different tenant (or a parent that does not exist for
// the scoped tenant).
func IsCrossTenantReference(err error) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != pgForeignKeyViolationErrCode {
		return false
	}

	return strings.HasSuffix(pgError.ConstraintName, tenantFKSuffix)
}

// ConstraintName returns the violated constraint's name, if the error is a
// PostgreSQL constraint violation.
func ConstraintName(err error) string {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) {
		return ""
	}

	return pgError.ConstraintName
}
