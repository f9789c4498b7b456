package schemamigrations

import (
	"context"
	"database/sql"
)

var bookingsClients = compositeRef{
	Parent:        "clients",
	Child:         "bookings",
	FKColumn:      "client_id",
	OldConstraint: "fk_bookings_client",
	NewConstraint: "fk_bookings_client_tenant",
}

func upCompositeBookingsClients(ctx context.Context, tx *sql.Tx) error {
	return upCompositeRef(ctx, tx, bookingsClients)
}

func downCompositeBookingsClients(ctx context.Context, tx *sql.Tx) error {
	return downCompositeRef(ctx, tx, bookingsClients)
}
