package middleware

import (
	"errors"
	"net/http"

	"github.com/stafferly/stafferly/internal/tenantctx"
)

// TenantHeaderName carries the tenant id resolved by the edge proxy from the
// request's subdomain. It is stripped and re-set at the edge, so its value is
// server-resolved, never client-chosen.
const TenantHeaderName = "X-Resolved-Tenant"

var ErrTenantNotResolved = errors.New("tenant not resolved for request")

// InjectTenant establishes the tenant scope for the request, exactly once,
// before any handler runs. Requests without a resolved tenant are rejected;
// routes that legitimately run without one (health, metrics, auth bootstrap)
// are mounted outside this middleware and show up in the skip-tenant report.
func InjectTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := r.Header.Get(TenantHeaderName)
			if tenantID == "" {
				writeError(r.Context(), w, http.StatusBadRequest, "tenant could not be resolved")
				return
			}

			ctx := tenantctx.WithTenant(r.Context(), tenantID)
			ctx = tenantctx.InjectRequestID(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
