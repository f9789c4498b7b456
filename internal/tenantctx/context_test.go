package tenantctx_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafferly/stafferly/internal/tenantctx"
)

func TestTenantID(t *testing.T) {
	t.Run("Should return tenant id when scoped", func(t *testing.T) {
		ctx := tenantctx.WithTenant(t.Context(), "tenant-a")

		tenantID, ok := tenantctx.TenantID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "tenant-a", tenantID)
	})

	t.Run("Should report unset on fresh context", func(t *testing.T) {
		tenantID, ok := tenantctx.TenantID(t.Context())
		assert.False(t, ok)
		assert.Empty(t, tenantID)
	})

	t.Run("Should report unset on empty tenant id", func(t *testing.T) {
		ctx := tenantctx.WithTenant(t.Context(), "")

		_, ok := tenantctx.TenantID(ctx)
		assert.False(t, ok)
	})
}

func TestRequireTenantID(t *testing.T) {
	t.Run("Should return tenant id when scoped", func(t *testing.T) {
		ctx := tenantctx.WithTenant(t.Context(), "tenant-a")

		tenantID, err := tenantctx.RequireTenantID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tenant-a", tenantID)
	})

	t.Run("Should fail closed without a scope", func(t *testing.T) {
		_, err := tenantctx.RequireTenantID(t.Context())
		assert.ErrorIs(t, err, tenantctx.ErrMissingTenantContext)
	})
}

func TestRunWithTenant(t *testing.T) {
	t.Run("Should scope fn to the tenant", func(t *testing.T) {
		err := tenantctx.RunWithTenant(t.Context(), "tenant-a", func(ctx context.Context) error {
			tenantID, err := tenantctx.RequireTenantID(ctx)
			assert.NoError(t, err)
			assert.Equal(t, "tenant-a", tenantID)

			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("Should reject empty tenant id", func(t *testing.T) {
		err := tenantctx.RunWithTenant(t.Context(), "", func(_ context.Context) error {
			t.Fatal("fn must not run without a tenant")
			return nil
		})
		assert.ErrorIs(t, err, tenantctx.ErrInvalidTenantID)
	})

	t.Run("Should propagate fn error", func(t *testing.T) {
		errBoom := errors.New("boom")

		err := tenantctx.RunWithTenant(t.Context(), "tenant-a", func(_ context.Context) error {
			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("Should restore outer tenant after nested scope", func(t *testing.T) {
		err := tenantctx.RunWithTenant(t.Context(), "outer", func(outerCtx context.Context) error {
			err := tenantctx.RunWithTenant(outerCtx, "inner", func(innerCtx context.Context) error {
				tenantID, err := tenantctx.RequireTenantID(innerCtx)
				assert.NoError(t, err)
				assert.Equal(t, "inner", tenantID)

				return nil
			})
			require.NoError(t, err)

			tenantID, err := tenantctx.RequireTenantID(outerCtx)
			assert.NoError(t, err)
			assert.Equal(t, "outer", tenantID)

			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("Should not leak scope into the parent context", func(t *testing.T) {
		parent := t.Context()

		err := tenantctx.RunWithTenant(parent, "tenant-a", func(_ context.Context) error {
			return nil
		})
		require.NoError(t, err)

		_, ok := tenantctx.TenantID(parent)
		assert.False(t, ok)
	})
}

// TestRunWithTenant_ConcurrentIsolation interleaves many scoped units of work
// on the shared scheduler and checks every read, including reads after a
// simulated I/O suspension, observes the unit's own tenant id.
func TestRunWithTenant_ConcurrentIsolation(t *testing.T) {
	const trials = 100

	var wg sync.WaitGroup

	for i := range trials {
		tenantID := fmt.Sprintf("tenant-%d", i%2)

		wg.Add(1)

		go func() {
			defer wg.Done()

			err := tenantctx.RunWithTenant(t.Context(), tenantID, func(ctx context.Context) error {
				got, err := tenantctx.RequireTenantID(ctx)
				if err != nil {
					return err
				}

				if got != tenantID {
					return fmt.Errorf("before suspension: got %s, want %s", got, tenantID)
				}

				// Simulated I/O round-trip forcing a reschedule.
				time.Sleep(time.Millisecond)

				got, err = tenantctx.RequireTenantID(ctx)
				if err != nil {
					return err
				}

				if got != tenantID {
					return fmt.Errorf("after suspension: got %s, want %s", got, tenantID)
				}

				return nil
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
}

func TestRequestID(t *testing.T) {
	t.Run("Should return injected request id", func(t *testing.T) {
		ctx := tenantctx.InjectRequestID(t.Context())

		requestID, ok := tenantctx.RequestID(ctx)
		assert.True(t, ok)
		assert.NotEmpty(t, requestID)
	})

	t.Run("Should report unset without injection", func(t *testing.T) {
		_, ok := tenantctx.RequestID(t.Context())
		assert.False(t, ok)
	})
}
