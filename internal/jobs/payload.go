package jobs

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/stafferly/stafferly/internal/errs"
	"github.com/stafferly/stafferly/internal/tenantctx"
)

var (
	ErrParsingPayload = errors.New("could not parse task payload")
	ErrPayloadTenant  = errors.New("task payload requires a tenant scope")
)

// TaskPayload is the envelope for every queued task. Per-tenant tasks carry
// the tenant id of the scope that enqueued them; handlers re-establish the
// scope from it, since no request pipeline exists on the worker.
type TaskPayload struct {
	TenantID string
	Data     []byte
}

// NewTenantTaskPayload builds a payload stamped with the current tenant
// scope. It fails closed: enqueuing a per-tenant task outside a scope is the
// same defect as querying outside one.
func NewTenantTaskPayload(ctx context.Context, data []byte) (TaskPayload, error) {
	tenantID, err := tenantctx.RequireTenantID(ctx)
	if err != nil {
		return TaskPayload{}, errs.Wrap(ErrPayloadTenant, err)
	}

	return TaskPayload{TenantID: tenantID, Data: data}, nil
}

// NewGlobalTaskPayload builds a payload for tenant-agnostic work. Handlers
// of such tasks must resolve and scope a tenant per item before touching
// tenant-owned data; the async-boundary auditor checks they do.
func NewGlobalTaskPayload(data []byte) TaskPayload {
	return TaskPayload{Data: data}
}

func ParseTaskPayload(payload []byte) (TaskPayload, error) {
	var p TaskPayload

	err := json.Unmarshal(payload, &p)
	if err != nil {
		return TaskPayload{}, errs.Wrap(ErrParsingPayload, err)
	}

	return p, nil
}

func (p *TaskPayload) ToBytes() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errs.Wrap(ErrParsingPayload, err)
	}

	return data, nil
}
