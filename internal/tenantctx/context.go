// Package tenantctx carries the current tenant id on a context.Context.
//
// The tenant id is established exactly once per unit of work: by the HTTP
// middleware for requests, or by RunWithTenant for everything else (queue
// handlers, crons, backfills). Code reading the tenant id picks one of two
// accessors. RequireTenantID is the sanctioned one for any code touching
// tenant-owned data: it fails closed with ErrMissingTenantContext. TenantID
// is for code that explicitly handles the unset case, such as logging.
// Defaulting its result to a literal is the anti-pattern the unsafe-fallback
// auditor rejects.
package tenantctx

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrMissingTenantContext means a code path reached tenant-owned data
	// without ever entering a tenant scope. Always a programming defect;
	// never catch it to substitute a default tenant.
	ErrMissingTenantContext = errors.New("no tenant id in context")

	// ErrInvalidTenantID is returned by RunWithTenant for an empty tenant id.
	ErrInvalidTenantID = errors.New("tenant id must not be empty")
)

type key int

const (
	tenantKey key = iota
	requestIDKey
)

// WithTenant returns a context scoped to the given tenant. Reserved for the
// request middleware and RunWithTenant; application code must not call it
// directly, otherwise the async-boundary auditor cannot see the scope entry.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey, tenantID)
}

// TenantID returns the current tenant id, or false when no scope is active.
func TenantID(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantKey).(string)
	if !ok || tenantID == "" {
		return "", false
	}

	return tenantID, true
}

// RequireTenantID returns the current tenant id or ErrMissingTenantContext.
func RequireTenantID(ctx context.Context) (string, error) {
	tenantID, ok := TenantID(ctx)
	if !ok {
		return "", ErrMissingTenantContext
	}

	return tenantID, nil
}

// RunWithTenant executes fn under a scope for tenantID. This is the only
// sanctioned way to enter tenant context outside the request pipeline.
//
// The scope lives on the derived context passed to fn, so it covers every
// call and goroutine that threads that context, and it ends when fn returns,
// on success, error or cancellation alike. Nested calls re-scope to the inner
// tenant for the duration of the inner fn; the outer context is untouched.
func RunWithTenant(ctx context.Context, tenantID string, fn func(ctx context.Context) error) error {
	if tenantID == "" {
		return ErrInvalidTenantID
	}

	return fn(WithTenant(ctx, tenantID))
}

// InjectRequestID stamps a fresh request id used for log correlation.
func InjectRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestIDKey, uuid.NewString())
}

// RequestID returns the request id, or false when none was injected.
func RequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		return "", false
	}

	return requestID, true
}
