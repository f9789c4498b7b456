package schemamigrations

import (
	"context"
	"database/sql"
)

var walletsClients = compositeRef{
	Parent:        "clients",
	Child:         "wallets",
	FKColumn:      "client_id",
	OldConstraint: "fk_wallets_client",
	NewConstraint: "fk_wallets_client_tenant",
}

func upCompositeWalletsClients(ctx context.Context, tx *sql.Tx) error {
	return upCompositeRef(ctx, tx, walletsClients)
}

func downCompositeWalletsClients(ctx context.Context, tx *sql.Tx) error {
	return downCompositeRef(ctx, tx, walletsClients)
}
