package billing

import (
	"context"

	"example.com/app/internal/tenantctx"
)

func InvoiceScopeStrict(ctx context.Context) (string, error) {
	tenantID, err := tenantctx.RequireTenantID(ctx)
	if err != nil {
		return "", err
	}

	return tenantID, nil
}
