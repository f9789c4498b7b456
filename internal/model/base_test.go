package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafferly/stafferly/internal/model"
)

func TestAutoTimeModel_BeforeCreate(t *testing.T) {
	t.Run("Should set timestamps when zero", func(t *testing.T) {
		m := &model.AutoTimeModel{}

		require.NoError(t, m.BeforeCreate(nil))
		assert.False(t, m.CreatedAt.IsZero())
		assert.False(t, m.UpdatedAt.IsZero())
	})

	t.Run("Should keep an explicit creation time", func(t *testing.T) {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		m := &model.AutoTimeModel{CreatedAt: created}

		require.NoError(t, m.BeforeCreate(nil))
		assert.Equal(t, created, m.CreatedAt)
	})
}

func TestTenantOwned_StampTenant(t *testing.T) {
	booking := &model.Booking{}
	booking.StampTenant("tenant-a")

	assert.Equal(t, "tenant-a", booking.OwnerTenantID())
	assert.False(t, booking.IsSharedModel())
}

func TestTenant_IsSharedModel(t *testing.T) {
	assert.True(t, model.Tenant{}.IsSharedModel())
	assert.Equal(t, "tenants", model.Tenant{}.TableName())
}
