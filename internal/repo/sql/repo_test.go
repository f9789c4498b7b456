package sql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafferly/stafferly/internal/model"
	"github.com/stafferly/stafferly/internal/repo"
	"github.com/stafferly/stafferly/internal/repo/sql"
	"github.com/stafferly/stafferly/internal/tenantctx"
	"github.com/stafferly/stafferly/internal/testutils"
)

func newClient(t *testing.T, r repo.Repo, ctx context.Context) *model.Client {
	t.Helper()

	client := &model.Client{ID: uuid.New(), Name: "acme"}
	require.NoError(t, r.Create(ctx, client))

	return client
}

func newBooking(clientID uuid.UUID) *model.Booking {
	now := time.Now().UTC()

	return &model.Booking{
		ID:       uuid.New(),
		ClientID: clientID,
		Status:   model.BookingPending,
		StartsAt: now,
		EndsAt:   now.Add(time.Hour),
	}
}

func TestRepo_Create(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctx := testutils.CreateCtxWithTenant(testutils.TestTenants[0])

	t.Run("Should stamp the tenant id from context", func(t *testing.T) {
		client := newClient(t, r, ctx)
		assert.Equal(t, testutils.TestTenants[0], client.OwnerTenantID())
	})

	t.Run("Should override a caller-supplied tenant id", func(t *testing.T) {
		client := &model.Client{ID: uuid.New(), Name: "mallory"}
		client.StampTenant(testutils.TestTenants[1])

		require.NoError(t, r.Create(ctx, client))
		assert.Equal(t, testutils.TestTenants[0], client.OwnerTenantID())
	})

	t.Run("Should fail closed without a tenant scope", func(t *testing.T) {
		err := r.Create(t.Context(), &model.Client{ID: uuid.New(), Name: "nobody"})

		assert.ErrorIs(t, err, repo.ErrWithTenant)
		assert.ErrorIs(t, err, tenantctx.ErrMissingTenantContext)
	})
}

func TestRepo_First_TenantScoping(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctxA := testutils.CreateCtxWithTenant(testutils.TestTenants[0])
	ctxB := testutils.CreateCtxWithTenant(testutils.TestTenants[1])

	client := newClient(t, r, ctxA)

	t.Run("Should find the row under the owning tenant", func(t *testing.T) {
		found := &model.Client{}
		ok, err := r.First(ctxA, found, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, client.ID)),
		))

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, client.Name, found.Name)
	})

	t.Run("Should report not found under another tenant", func(t *testing.T) {
		_, err := r.First(ctxB, &model.Client{}, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, client.ID)),
		))

		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("Should reject tenant_id as query criteria", func(t *testing.T) {
		_, err := r.First(ctxB, &model.Client{}, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(
				repo.NewCompositeKey().Where(repo.TenantIDField, testutils.TestTenants[0]),
			),
		))

		assert.ErrorIs(t, err, repo.ErrTenantScopedField)
	})
}

func TestRepo_List_TenantScoping(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctxA := testutils.CreateCtxWithTenant(testutils.TestTenants[0])
	ctxB := testutils.CreateCtxWithTenant(testutils.TestTenants[1])

	newClient(t, r, ctxA)
	newClient(t, r, ctxA)
	newClient(t, r, ctxB)

	var clients []*model.Client

	count, err := r.List(ctxA, &model.Client{}, &clients, *repo.NewQuery())
	require.NoError(t, err)

	assert.Equal(t, 2, count)

	for _, c := range clients {
		assert.Equal(t, testutils.TestTenants[0], c.OwnerTenantID())
	}
}

func TestRepo_CompositeForeignKey(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctxA := testutils.CreateCtxWithTenant(testutils.TestTenants[0])
	ctxB := testutils.CreateCtxWithTenant(testutils.TestTenants[1])

	client := newClient(t, r, ctxA)

	t.Run("Should reject a booking referencing another tenant's client", func(t *testing.T) {
		err := r.Create(ctxB, newBooking(client.ID))

		assert.ErrorIs(t, err, repo.ErrCrossTenantIntegrity)
	})

	t.Run("Should accept a booking under the client's tenant", func(t *testing.T) {
		assert.NoError(t, r.Create(ctxA, newBooking(client.ID)))
	})
}

func TestRepo_Patch(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctxA := testutils.CreateCtxWithTenant(testutils.TestTenants[0])
	ctxB := testutils.CreateCtxWithTenant(testutils.TestTenants[1])

	client := newClient(t, r, ctxA)

	t.Run("Should patch under the owning tenant", func(t *testing.T) {
		patch := &model.Client{Name: "acme gmbh"}

		ok, err := r.Patch(ctxA, patch, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, client.ID)),
		))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Should not patch another tenant's row", func(t *testing.T) {
		patch := &model.Client{Name: "hijacked"}

		ok, err := r.Patch(ctxB, patch, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, client.ID)),
		))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepo_Delete(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctxA := testutils.CreateCtxWithTenant(testutils.TestTenants[0])
	ctxB := testutils.CreateCtxWithTenant(testutils.TestTenants[1])

	client := newClient(t, r, ctxA)
	byID := func() repo.Query {
		return *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, client.ID)),
		)
	}

	t.Run("Should not delete another tenant's row", func(t *testing.T) {
		deleted, err := r.Delete(ctxB, &model.Client{}, byID())
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("Should delete under the owning tenant", func(t *testing.T) {
		deleted, err := r.Delete(ctxA, &model.Client{}, byID())
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestRepo_GlobalEmailUniqueness(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctxA := testutils.CreateCtxWithTenant(testutils.TestTenants[0])
	ctxB := testutils.CreateCtxWithTenant(testutils.TestTenants[1])

	user := &model.User{ID: uuid.New(), Email: "sam@example.com", Name: "Sam", Role: "staff"}
	require.NoError(t, r.Create(ctxA, user))

	// Final migration state: email is unique across tenants, not per tenant.
	dup := &model.User{ID: uuid.New(), Email: "sam@example.com", Name: "Sam Again", Role: "staff"}
	err := r.Create(ctxB, dup)

	assert.ErrorIs(t, err, repo.ErrUniqueConstraint)
}

func TestRepo_Transaction(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctxA := testutils.CreateCtxWithTenant(testutils.TestTenants[0])

	t.Run("Should commit on success", func(t *testing.T) {
		client := &model.Client{ID: uuid.New(), Name: "tx-client"}

		err := r.Transaction(ctxA, func(ctx context.Context, txRepo repo.Repo) error {
			err := txRepo.Create(ctx, client)
			if err != nil {
				return err
			}

			return txRepo.Create(ctx, newBooking(client.ID))
		})
		require.NoError(t, err)

		var bookings []*model.Booking
		count, err := r.List(ctxA, &model.Booking{}, &bookings, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.ClientIDField, client.ID)),
		))
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Should roll back on error", func(t *testing.T) {
		client := &model.Client{ID: uuid.New(), Name: "rollback-client"}

		err := r.Transaction(ctxA, func(ctx context.Context, txRepo repo.Repo) error {
			err := txRepo.Create(ctx, client)
			if err != nil {
				return err
			}

			// Booking referencing a missing client fails the composite FK.
			return txRepo.Create(ctx, newBooking(uuid.New()))
		})
		assert.ErrorIs(t, err, repo.ErrCrossTenantIntegrity)

		_, err = r.First(ctxA, &model.Client{}, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, client.ID)),
		))
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestRepo_Set(t *testing.T) {
	con, _ := testutils.NewTestDB(t)
	r := sql.NewRepository(con)
	ctxA := testutils.CreateCtxWithTenant(testutils.TestTenants[0])
	ctxB := testutils.CreateCtxWithTenant(testutils.TestTenants[1])

	t.Run("Should create then update under the same tenant", func(t *testing.T) {
		task := &model.Task{ID: uuid.New(), Title: "prep payroll"}
		require.NoError(t, r.Set(ctxA, task))

		task.Done = true
		require.NoError(t, r.Set(ctxA, task))

		found := &model.Task{}
		ok, err := r.First(ctxA, found, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, task.ID)),
		))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, found.Done)
	})

	t.Run("Should not re-home another tenant's row on key collision", func(t *testing.T) {
		task := &model.Task{ID: uuid.New(), Title: "close the books"}
		require.NoError(t, r.Set(ctxA, task))

		intruder := &model.Task{ID: task.ID, Title: "hijacked", Done: true}
		err := r.Set(ctxB, intruder)
		assert.ErrorIs(t, err, repo.ErrCrossTenantIntegrity)

		found := &model.Task{}
		ok, err := r.First(ctxA, found, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, task.ID)),
		))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, testutils.TestTenants[0], found.OwnerTenantID())
		assert.Equal(t, "close the books", found.Title)
		assert.False(t, found.Done)

		_, err = r.First(ctxB, &model.Task{}, *repo.NewQuery().Where(
			repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.IDField, task.ID)),
		))
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}
