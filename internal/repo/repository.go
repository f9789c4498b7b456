package repo

import (
	"context"
	"errors"
)

// TransactionFunc is func signature for Transaction.
type TransactionFunc func(context.Context, Repo) error

// Repo defines the interface for tenant-scoped repository operations.
//
// Every operation on a tenant-owned Resource is constrained to the tenant of
// the active scope (tenantctx.RequireTenantID). Callers never pass a tenant
// id: not as an argument, not as a query field. A call without an active
// scope fails with tenantctx.ErrMissingTenantContext before reaching the
// data layer.
type Repo interface {
	Create(ctx context.Context, resource Resource) error
	List(ctx context.Context, resource Resource, result any, query Query) (int, error)
	First(ctx context.Context, resource Resource, query Query) (bool, error)
	Patch(ctx context.Context, resource Resource, query Query) (bool, error)
	Delete(ctx context.Context, resource Resource, query Query) (bool, error)
	Set(ctx context.Context, resource Resource) error
	Transaction(ctx context.Context, txFunc TransactionFunc) error
}

// Resource defines the interface all persisted models implement.
type Resource interface {
	IsSharedModel() bool
	TableName() string
}

// TenantScoped is implemented by tenant-owned models (via model.TenantOwned).
// The repository stamps the tenant id on create and reads it back when
// reporting integrity violations.
type TenantScoped interface {
	Resource
	StampTenant(tenantID string)
	OwnerTenantID() string
}

const DefaultLimit = 100

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUniqueConstraint = errors.New("unique constraint violation")
	ErrCreateResource   = errors.New("failed to create resource")
	ErrUpdateResource   = errors.New("failed to update resource")
	ErrDeleteResource   = errors.New("failed to delete resource")
	ErrGetResource      = errors.New("failed to get resource")
	ErrSetResource      = errors.New("failed to set resource")
	ErrTransaction      = errors.New("failed to execute transaction")
	ErrWithTenant       = errors.New("failed to use tenant from context")
	ErrNotTenantScoped  = errors.New("tenant-owned resource does not embed model.TenantOwned")

	// ErrCrossTenantIntegrity surfaces a composite foreign key rejecting a
	// row whose tenant id differs from its referenced parent's. It signals a
	// data-integrity bug in code; the write is never retried.
	ErrCrossTenantIntegrity = errors.New("cross-tenant integrity violation")

	// ErrTenantScopedField is returned when a caller supplies tenant_id as
	// query criteria. The repository injects the tenant filter itself;
	// accepting it from callers would allow overriding the scope.
	ErrTenantScopedField = errors.New("tenant_id is injected by the repository and cannot be supplied")
)
