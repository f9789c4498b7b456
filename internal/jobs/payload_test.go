package jobs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafferly/stafferly/internal/jobs"
	"github.com/stafferly/stafferly/internal/tenantctx"
)

func TestNewTenantTaskPayload(t *testing.T) {
	t.Run("Should capture the active tenant scope", func(t *testing.T) {
		ctx := tenantctx.WithTenant(t.Context(), "tenant-a")

		payload, err := jobs.NewTenantTaskPayload(ctx, []byte(`{"x":1}`))

		require.NoError(t, err)
		assert.Equal(t, "tenant-a", payload.TenantID)
		assert.JSONEq(t, `{"x":1}`, string(payload.Data))
	})

	t.Run("Should fail closed without a tenant scope", func(t *testing.T) {
		_, err := jobs.NewTenantTaskPayload(t.Context(), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, jobs.ErrPayloadTenant)
		assert.ErrorIs(t, err, tenantctx.ErrMissingTenantContext)
	})
}

func TestParseTaskPayload(t *testing.T) {
	t.Run("Should round-trip", func(t *testing.T) {
		ctx := tenantctx.WithTenant(t.Context(), "tenant-b")

		payload, err := jobs.NewTenantTaskPayload(ctx, []byte(`"data"`))
		require.NoError(t, err)

		raw, err := payload.ToBytes()
		require.NoError(t, err)

		parsed, err := jobs.ParseTaskPayload(raw)
		require.NoError(t, err)
		assert.Equal(t, payload, parsed)
	})

	t.Run("Should reject malformed payloads", func(t *testing.T) {
		_, err := jobs.ParseTaskPayload([]byte("not json"))

		assert.ErrorIs(t, err, jobs.ErrParsingPayload)
	})
}
