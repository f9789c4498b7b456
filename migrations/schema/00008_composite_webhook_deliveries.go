package schemamigrations

import (
	"context"
	"database/sql"
)

var webhookDeliveries = compositeRef{
	Parent:        "webhooks",
	Child:         "webhook_deliveries",
	FKColumn:      "webhook_id",
	OldConstraint: "fk_webhook_deliveries_webhook",
	NewConstraint: "fk_webhook_deliveries_webhook_tenant",
}

func upCompositeWebhookDeliveries(ctx context.Context, tx *sql.Tx) error {
	return upCompositeRef(ctx, tx, webhookDeliveries)
}

func downCompositeWebhookDeliveries(ctx context.Context, tx *sql.Tx) error {
	return downCompositeRef(ctx, tx, webhookDeliveries)
}
