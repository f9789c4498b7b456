package schemamigrations

import (
	"context"
	"database/sql"
)

// upInitialSchema creates the shared schema. Every tenant-owned table
// carries tenant_id referencing the tenants registry; parent/child links
// start as naive single-column foreign keys and are tightened to composite
// keys by the later migrations in this lineage.
func upInitialSchema(ctx context.Context, tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE tenants (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE users (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX idx_users_tenant_email ON users (tenant_id, email)`,
		`CREATE TABLE clients (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE bookings (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			client_id UUID NOT NULL,
			status VARCHAR(50) NOT NULL,
			starts_at TIMESTAMPTZ NOT NULL,
			ends_at TIMESTAMPTZ NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT fk_bookings_client FOREIGN KEY (client_id) REFERENCES clients (id)
		)`,
		`CREATE TABLE invoices (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			booking_id UUID NOT NULL,
			status VARCHAR(50) NOT NULL,
			amount_cents BIGINT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			due_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT fk_invoices_booking FOREIGN KEY (booking_id) REFERENCES bookings (id)
		)`,
		`CREATE TABLE tasks (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			title VARCHAR(255) NOT NULL,
			done BOOLEAN NOT NULL DEFAULT FALSE,
			due_at TIMESTAMPTZ,
			details TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE task_assignees (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			task_id UUID NOT NULL,
			user_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT fk_task_assignees_task FOREIGN KEY (task_id) REFERENCES tasks (id),
			CONSTRAINT fk_task_assignees_user FOREIGN KEY (user_id) REFERENCES users (id)
		)`,
		`CREATE TABLE time_entries (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			task_id UUID NOT NULL,
			user_id UUID NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			minutes INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT fk_time_entries_task FOREIGN KEY (task_id) REFERENCES tasks (id),
			CONSTRAINT fk_time_entries_user FOREIGN KEY (user_id) REFERENCES users (id)
		)`,
		`CREATE TABLE wallets (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			client_id UUID NOT NULL,
			balance_cents BIGINT NOT NULL DEFAULT 0,
			currency VARCHAR(3) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT fk_wallets_client FOREIGN KEY (client_id) REFERENCES clients (id)
		)`,
		`CREATE TABLE webhooks (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			url VARCHAR(2048) NOT NULL,
			event VARCHAR(100) NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE webhook_deliveries (
			id UUID PRIMARY KEY,
			tenant_id VARCHAR(64) NOT NULL REFERENCES tenants (id),
			webhook_id UUID NOT NULL,
			status VARCHAR(50) NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			delivered_at TIMESTAMPTZ,
			payload TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT fk_webhook_deliveries_webhook FOREIGN KEY (webhook_id) REFERENCES webhooks (id)
		)`,
	}

	for _, stmt := range statements {
		_, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return err
		}
	}

	return nil
}

func downInitialSchema(ctx context.Context, tx *sql.Tx) error {
	tables := []string{
		"webhook_deliveries",
		"webhooks",
		"wallets",
		"time_entries",
		"task_assignees",
		"tasks",
		"invoices",
		"bookings",
		"clients",
		"users",
		"tenants",
	}

	for _, table := range tables {
		_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table)
		if err != nil {
			return err
		}
	}

	return nil
}
