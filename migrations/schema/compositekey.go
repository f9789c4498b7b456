package schemamigrations

import (
	"context"
	"database/sql"
	"fmt"
)

// compositeRef describes one parent/child relationship being tightened from
// a naive single-column foreign key to the composite
// (fkColumn, tenant_id) -> parent (id, tenant_id) form.
type compositeRef struct {
	Parent        string
	Child         string
	FKColumn      string
	OldConstraint string
	NewConstraint string
}

// parentUniqueName is the composite unique constraint on the parent. It is
// shared between all children of the same parent, so up is idempotent about
// creating it and down only drops it once no foreign key references it.
func (r compositeRef) parentUniqueName() string {
	return fmt.Sprintf("uq_%s_id_tenant", r.Parent)
}

func upCompositeRef(ctx context.Context, tx *sql.Tx, ref compositeRef) error {
	exists, err := constraintExists(ctx, tx, ref.parentUniqueName())
	if err != nil {
		return err
	}

	if !exists {
		_, err = tx.ExecContext(ctx, fmt.Sprintf(
			`ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (id, tenant_id)`,
			ref.Parent, ref.parentUniqueName(),
		))
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`,
		ref.Child, ref.OldConstraint,
	))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		`ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s, tenant_id) REFERENCES %s (id, tenant_id)`,
		ref.Child, ref.NewConstraint, ref.FKColumn, ref.Parent,
	))

	return err
}

func downCompositeRef(ctx context.Context, tx *sql.Tx, ref compositeRef) error {
	_, err := tx.ExecContext(ctx, fmt.Sprintf(
		`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`,
		ref.Child, ref.NewConstraint,
	))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		`ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (id)`,
		ref.Child, ref.OldConstraint, ref.FKColumn, ref.Parent,
	))
	if err != nil {
		return err
	}

	referenced, err := uniqueReferencedByFK(ctx, tx, ref.parentUniqueName())
	if err != nil {
		return err
	}

	if !referenced {
		_, err = tx.ExecContext(ctx, fmt.Sprintf(
			`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`,
			ref.Parent, ref.parentUniqueName(),
		))
	}

	return err
}

func constraintExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var exists bool

	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = $1)`, name,
	).Scan(&exists)

	return exists, err
}

// uniqueReferencedByFK reports whether any foreign key still depends on the
// index backing the named unique constraint.
func uniqueReferencedByFK(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var exists bool

	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM pg_constraint f
			JOIN pg_constraint u ON f.conindid = u.conindid
			WHERE u.conname = $1 AND f.contype = 'f'
		)`, name,
	).Scan(&exists)

	return exists, err
}
