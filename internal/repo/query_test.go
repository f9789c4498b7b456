package repo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stafferly/stafferly/internal/repo"
)

func TestCompositeKey_Where(t *testing.T) {
	t.Run("Should default to equality", func(t *testing.T) {
		ck := repo.NewCompositeKey().Where(repo.NameField, "acme")

		assert.Len(t, ck.Conds, 1)
		assert.Equal(t, repo.Equal, ck.Conds[0].Value.Key.Operation)
		assert.Equal(t, "acme", ck.Conds[0].Value.Key.Value)
	})

	t.Run("Should apply comparison option", func(t *testing.T) {
		ck := repo.NewCompositeKey().Where(repo.CreatedAtField, 10, repo.Gt)

		assert.Equal(t, repo.GreaterThan, ck.Conds[0].Value.Key.Operation)
	})

	t.Run("Should reject multiple operations", func(t *testing.T) {
		ck := repo.NewCompositeKey().Where(repo.CreatedAtField, 10, repo.Gt, repo.Lt)

		assert.ErrorIs(t, ck.Conds[0].Value.Err, repo.ErrMultipleOperationsProvided)
	})

	t.Run("Should reject tenant_id as criteria", func(t *testing.T) {
		ck := repo.NewCompositeKey().Where(repo.TenantIDField, "tenant-b")

		assert.ErrorIs(t, ck.Conds[0].Value.Err, repo.ErrTenantScopedField)
	})
}

func TestQuery_Builders(t *testing.T) {
	q := repo.NewQuery().
		Where(repo.NewCompositeKeyGroup(repo.NewCompositeKey().Where(repo.StatusField, "PENDING"))).
		Order(repo.CreatedAtField, repo.Desc).
		SetLimit(10).
		SetOffset(20)

	assert.Len(t, q.CompositeKeyGroup, 1)
	assert.True(t, q.CompositeKeyGroup[0].IsStrict)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 20, q.Offset)
	assert.Equal(t, repo.Desc, q.OrderFields[0].Direction)
}

func TestQuery_UpdateFields(t *testing.T) {
	t.Run("Should mark all fields", func(t *testing.T) {
		q := repo.NewQuery().UpdateAll()
		assert.True(t, q.UpdateFields.All)
	})

	t.Run("Should collect explicit fields", func(t *testing.T) {
		q := repo.NewQuery().UpdateOnly(repo.NameField, repo.StatusField)
		assert.Equal(t, []repo.QueryField{repo.NameField, repo.StatusField}, q.UpdateFields.Fields)
	})
}
