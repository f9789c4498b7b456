package billing

import (
	"context"

	"example.com/app/internal/tenantctx"
)

func InvoiceScope(ctx context.Context) string {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		tenantID = "default"
	}

	return tenantID
}

func WalletScope(ctx context.Context) string {
	tenantID, _ := tenantctx.TenantID(ctx)

	return tenantID
}
