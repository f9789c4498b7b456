package sql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stafferly/stafferly/internal/errs"
	"github.com/stafferly/stafferly/internal/log"
	"github.com/stafferly/stafferly/internal/metrics"
	"github.com/stafferly/stafferly/internal/repo"
	"github.com/stafferly/stafferly/internal/repo/violations"
	"github.com/stafferly/stafferly/internal/tenantctx"
)

var ErrUnsupportedOrderDirective = errors.New("unsupported order directive")

// ResourceRepository is the tenant-scoped repository over GORM.
//
// Every operation on a tenant-owned resource goes through scoped, which
// injects "tenant_id = ?" with the id from the active scope. There is no
// method that accepts a tenant id from the caller. Code needing the raw
// *gorm.DB escape hatch lives outside this package and is watched by the
// query-builder scoping auditor.
type ResourceRepository struct {
	db *gorm.DB
}

// NewRepository creates and returns a new instance of ResourceRepository.
func NewRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{
		db: db,
	}
}

// scoped returns tx constrained to the current tenant for tenant-owned
// resources. Shared models (the tenants registry) pass through unscoped.
func scoped(ctx context.Context, resource repo.Resource, tx *gorm.DB) (*gorm.DB, error) {
	if resource.IsSharedModel() {
		return tx, nil
	}

	tenantID, err := tenantctx.RequireTenantID(ctx)
	if err != nil {
		metrics.MissingTenantContext.Inc()
		return nil, errs.Wrap(repo.ErrWithTenant, err)
	}

	return tx.Where(resource.TableName()+".tenant_id = ?", tenantID), nil
}

// stamp writes the current tenant id onto a new row. The row's tenant id is
// always derived from context; a value already present on the struct is
// overwritten so request input can never choose the owner.
func stamp(ctx context.Context, resource repo.Resource) error {
	if resource.IsSharedModel() {
		return nil
	}

	owned, ok := resource.(repo.TenantScoped)
	if !ok {
		return repo.ErrNotTenantScoped
	}

	tenantID, err := tenantctx.RequireTenantID(ctx)
	if err != nil {
		metrics.MissingTenantContext.Inc()
		return errs.Wrap(repo.ErrWithTenant, err)
	}

	owned.StampTenant(tenantID)

	return nil
}

// Create stamps the current tenant id and stores a Resource.
func (r *ResourceRepository) Create(ctx context.Context, resource repo.Resource) error {
	err := stamp(ctx, resource)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Create(resource).Error
	if err != nil {
		return r.writeError(ctx, resource, repo.ErrCreateResource, err)
	}

	return nil
}

// List retrieves records matching the query under the current tenant scope.
// Result is an address of a slice of the resource type.
func (r *ResourceRepository) List(
	ctx context.Context,
	resource repo.Resource,
	result any,
	query repo.Query,
) (int, error) {
	var count int64

	tx, err := scoped(ctx, resource, r.db.WithContext(ctx).Model(resource))
	if err != nil {
		return 0, err
	}

	tx, err = applyQuery(tx, query)
	if err != nil {
		return 0, err
	}

	tx = tx.Count(&count)
	if tx.Error != nil {
		return 0, errs.Wrap(repo.ErrGetResource, tx.Error)
	}

	for _, order := range query.OrderFields {
		switch order.Direction {
		case repo.Desc:
			tx = tx.Order(order.Field + " desc")
		case repo.Asc:
			tx = tx.Order(order.Field + " asc")
		default:
			return 0, ErrUnsupportedOrderDirective
		}
	}

	res := applyPagination(tx, query).Find(result)
	if res.Error != nil {
		return 0, errs.Wrap(repo.ErrGetResource, res.Error)
	}

	return int(count), nil
}

// First fills the given Resource with the first match, scoped to the current
// tenant. A row that exists under another tenant is "not found" here.
func (r *ResourceRepository) First(
	ctx context.Context,
	resource repo.Resource,
	query repo.Query,
) (bool, error) {
	tx, err := scoped(ctx, resource, r.db.WithContext(ctx).Model(resource))
	if err != nil {
		return false, err
	}

	tx, err = applyQuery(tx, query)
	if err != nil {
		return false, err
	}

	res := applyPagination(tx, query).First(resource)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return false, errs.Wrap(repo.ErrNotFound, res.Error)
		}

		log.Error(ctx, "error finding the resource", res.Error)

		return false, errs.Wrap(repo.ErrGetResource, res.Error)
	}

	return res.RowsAffected > 0, nil
}

// Patch updates the matching rows under the current tenant scope. The
// tenant_id column is never part of the update set: a row's owner is
// immutable after creation.
func (r *ResourceRepository) Patch(
	ctx context.Context,
	resource repo.Resource,
	query repo.Query,
) (bool, error) {
	tx, err := scoped(ctx, resource, r.db.WithContext(ctx).Model(resource))
	if err != nil {
		return false, err
	}

	tx, err = applyQuery(tx, query)
	if err != nil {
		return false, err
	}

	res := applyUpdateQuery(tx.Clauses(clause.Returning{}), query).
		Omit("tenant_id").
		Updates(resource)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return false, errs.Wrap(repo.ErrNotFound, res.Error)
		}

		return false, r.writeError(ctx, resource, repo.ErrUpdateResource, res.Error)
	}

	return res.RowsAffected > 0, nil
}

// Delete removes matching rows under the current tenant scope.
//
// It returns true if a record was deleted,
// false if there was no record to delete,
// and error if the deletion failed.
func (r *ResourceRepository) Delete(
	ctx context.Context,
	resource repo.Resource,
	query repo.Query,
) (bool, error) {
	tx, err := scoped(ctx, resource, r.db.WithContext(ctx))
	if err != nil {
		return false, err
	}

	tx, err = applyQuery(tx, query)
	if err != nil {
		return false, err
	}

	res := applyPagination(tx, query).Delete(resource)
	if res.Error != nil {
		log.Error(ctx, "error deleting resource", res.Error)
		return false, errs.Wrap(repo.ErrDeleteResource, res.Error)
	}

	return res.RowsAffected > 0, nil
}

// Set creates the resource or updates it if it already exists, stamped with
// the current tenant id either way. The conflict arm only fires when the
// existing row belongs to the current tenant; a key collision with another
// tenant's row leaves that row untouched and is reported as a cross-tenant
// integrity violation.
func (r *ResourceRepository) Set(ctx context.Context, resource repo.Resource) error {
	err := stamp(ctx, resource)
	if err != nil {
		return err
	}

	onConflict := clause.OnConflict{UpdateAll: true}

	owned, tenantOwned := resource.(repo.TenantScoped)
	if tenantOwned && !resource.IsSharedModel() {
		onConflict.Where = clause.Where{Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: resource.TableName(), Name: "tenant_id"},
				Value:  owned.OwnerTenantID(),
			},
		}}
	}

	res := r.db.WithContext(ctx).Clauses(onConflict).Create(resource)
	if res.Error != nil {
		return r.writeError(ctx, resource, repo.ErrSetResource, res.Error)
	}

	if tenantOwned && !resource.IsSharedModel() && res.RowsAffected == 0 {
		constraint := resource.TableName() + "_upsert_tenant_guard"
		metrics.CrossTenantIntegrity.WithLabelValues(constraint).Inc()

		log.Error(ctx, "upsert collided with a row owned by another tenant",
			repo.ErrCrossTenantIntegrity,
			slog.String("table", resource.TableName()),
			slog.String("attemptedTenantId", owned.OwnerTenantID()),
		)

		return errs.Wrap(repo.ErrCrossTenantIntegrity, repo.ErrSetResource)
	}

	return nil
}

// Transaction wraps a function inside a database transaction.
// txFunc receives a repository bound to the transaction; returning an error
// rolls the transaction back, nil commits it. The tenant scope is whatever
// the passed context carries, unchanged by transaction boundaries.
func (r *ResourceRepository) Transaction(ctx context.Context, txFunc repo.TransactionFunc) error {
	err := r.db.WithContext(ctx).Transaction(
		func(tx *gorm.DB) error {
			return txFunc(ctx, NewRepository(tx))
		},
	)
	if err != nil {
		if errors.Is(err, repo.ErrCrossTenantIntegrity) || errors.Is(err, repo.ErrUniqueConstraint) {
			return err
		}

		return errs.Wrap(repo.ErrTransaction, err)
	}

	return nil
}

// writeError classifies a failed write. Composite tenant constraint
// rejections are logged with the attempted ids and mapped to
// ErrCrossTenantIntegrity; they indicate a bug that a retry cannot fix.
func (r *ResourceRepository) writeError(
	ctx context.Context,
	resource repo.Resource,
	base error,
	err error,
) error {
	switch {
	case violations.IsCrossTenantReference(err):
		constraint := violations.ConstraintName(err)
		metrics.CrossTenantIntegrity.WithLabelValues(constraint).Inc()

		attrs := []slog.Attr{
			slog.String("table", resource.TableName()),
			slog.String("constraint", constraint),
		}
		if owned, ok := resource.(repo.TenantScoped); ok {
			attrs = append(attrs, slog.String("attemptedTenantId", owned.OwnerTenantID()))
		}

		log.Error(ctx, "cross-tenant reference rejected by composite constraint", err, attrs...)

		return errs.Wrap(repo.ErrCrossTenantIntegrity, err)
	case errors.Is(err, gorm.ErrDuplicatedKey) || violations.IsUniqueConstraint(err):
		return errs.Wrap(repo.ErrUniqueConstraint, err)
	default:
		log.Error(ctx, "error writing resource", err)
		return errs.Wrap(base, err)
	}
}

// applyUpdateQuery selects the update field set on the db action.
func applyUpdateQuery(tx *gorm.DB, query repo.Query) *gorm.DB {
	if query.UpdateFields.All {
		tx = tx.Select("*")
	}

	if !query.UpdateFields.All && len(query.UpdateFields.Fields) > 0 {
		tx = tx.Select(query.UpdateFields.Fields[0], toAnySlice(query.UpdateFields.Fields[1:])...)
	}

	return tx
}

func toAnySlice(fields []repo.QueryField) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, f)
	}

	return out
}

// applyQuery applies the composite key groups and preloads to the query.
func applyQuery(tx *gorm.DB, query repo.Query) (*gorm.DB, error) {
	if len(query.CompositeKeyGroup) > 0 {
		baseQuery := tx.Session(&gorm.Session{NewDB: true})

		for i, ck := range query.CompositeKeyGroup {
			tk, err := handleCompositeKey(tx, ck.CompositeKey)
			if err != nil {
				return nil, err
			}

			if i == 0 || ck.IsStrict {
				baseQuery = baseQuery.Where(tk)
			} else {
				baseQuery = baseQuery.Or(tk)
			}
		}

		tx = tx.Where(baseQuery)
	}

	for _, pr := range query.PreloadModel {
		tx = tx.Preload(pr)
	}

	return tx, nil
}

func applyPagination(tx *gorm.DB, query repo.Query) *gorm.DB {
	if query.Limit <= 0 {
		query.Limit = repo.DefaultLimit
	}

	return tx.Offset(query.Offset).Limit(query.Limit)
}

// handleCompositeKey applies the composite key to the query. Conditions that
// were rejected at build time (tenant_id criteria, conflicting operations)
// surface here before any SQL is issued.
func handleCompositeKey(tx *gorm.DB, compositeKey repo.CompositeKey) (*gorm.DB, error) {
	sub := tx.Session(&gorm.Session{NewDB: true})

	for _, cond := range compositeKey.Conds {
		entry := cond.Value
		if entry.Err != nil {
			return nil, entry.Err
		}

		sub = applyFieldCondition(sub, cond.Field, entry.Key, compositeKey.IsStrict)
	}

	return sub, nil
}

func applyFieldCondition(tx *gorm.DB, field string, key repo.Key, isStrict bool) *gorm.DB {
	switch key.Operation {
	case repo.GreaterThan, repo.LessThan, repo.NotEqual:
		return applyCondition(tx, field, string(key.Operation), key.Value, isStrict)
	case repo.Equal:
		return applyEqualCondition(tx, field, key, isStrict)
	}

	return tx
}

func applyEqualCondition(tx *gorm.DB, field string, key repo.Key, isStrict bool) *gorm.DB {
	v := reflect.ValueOf(key.Value)
	isSlice := (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) &&
		v.Type() != reflect.TypeFor[uuid.UUID]()

	if isSlice {
		return applyCondition(tx, field, "IN", key.Value, isStrict)
	}

	return applyCondition(tx, field, "=", key.Value, isStrict)
}

func applyCondition(tx *gorm.DB, field, operator string, value any, isStrict bool) *gorm.DB {
	if isStrict {
		return tx.Where(fmt.Sprintf("%s %s (?)", field, operator), value)
	}

	return tx.Or(fmt.Sprintf("%s %s ?", field, operator), value)
}
