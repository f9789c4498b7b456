package schemamigrations

import (
	"context"
	"database/sql"
)

var invoicesBookings = compositeRef{
	Parent:        "bookings",
	Child:         "invoices",
	FKColumn:      "booking_id",
	OldConstraint: "fk_invoices_booking",
	NewConstraint: "fk_invoices_booking_tenant",
}

func upCompositeInvoicesBookings(ctx context.Context, tx *sql.Tx) error {
	return upCompositeRef(ctx, tx, invoicesBookings)
}

func downCompositeInvoicesBookings(ctx context.Context, tx *sql.Tx) error {
	return downCompositeRef(ctx, tx, invoicesBookings)
}
