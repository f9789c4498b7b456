package repo

import (
	"errors"
	"fmt"
)

var (
	ErrMultipleOperationsProvided = errors.New("multiple operations provided")
)

type (
	ComparisonOp   string
	OrderDirection string
	QueryField     = string
)

const (
	Equal       ComparisonOp = "="
	NotEqual    ComparisonOp = "!="
	GreaterThan ComparisonOp = ">"
	LessThan    ComparisonOp = "<"

	Desc OrderDirection = "desc"
	Asc  OrderDirection = "asc"

	IDField          QueryField = "id"
	TenantIDField    QueryField = "tenant_id"
	ClientIDField    QueryField = "client_id"
	BookingIDField   QueryField = "booking_id"
	TaskIDField      QueryField = "task_id"
	UserIDField      QueryField = "user_id"
	WebhookIDField   QueryField = "webhook_id"
	EmailField       QueryField = "email"
	NameField        QueryField = "name"
	StatusField      QueryField = "status"
	DoneField        QueryField = "done"
	EventField       QueryField = "event"
	AttemptsField    QueryField = "attempts"
	DeliveredAtField QueryField = "delivered_at"
	EnabledField     QueryField = "enabled"
	StartsAtField    QueryField = "starts_at"
	DueAtField       QueryField = "due_at"
	CreatedAtField   QueryField = "created_at"
)

type Key struct {
	Value     any
	Operation ComparisonOp
}

// CompositeKeyEntry represents an entry in a CompositeKey,
// containing a Key and an optional error detected while building it.
type CompositeKeyEntry struct {
	Key Key
	Err error
}

type Condition struct {
	Field QueryField
	Value CompositeKeyEntry
}

func (c *Condition) String() string {
	return fmt.Sprintf("%s %s '%v'", c.Field, c.Value.Key.Operation, c.Value.Key.Value)
}

// CompositeKey is a collection of fields and matching values that are
// collectively used to find records. IsStrict false joins conditions with OR.
type CompositeKey struct {
	IsStrict bool
	Conds    []Condition
}

// NewCompositeKey creates and returns a new CompositeKey.
func NewCompositeKey() CompositeKey {
	return CompositeKey{
		IsStrict: true,
		Conds:    []Condition{},
	}
}

// Where adds a condition to the CompositeKey. The tenant_id field is
// rejected here: scoping is injected by the repository and a caller-supplied
// value would override it.
func (c CompositeKey) Where(q QueryField, v any, options ...func(v any) Key) CompositeKey {
	switch {
	case q == TenantIDField:
		c.Conds = append(c.Conds,
			Condition{Field: q, Value: CompositeKeyEntry{Err: ErrTenantScopedField}})
	case len(options) == 0:
		c.Conds = append(c.Conds,
			Condition{Field: q, Value: CompositeKeyEntry{Key: Key{Value: v, Operation: Equal}}})
	case len(options) > 1:
		c.Conds = append(c.Conds,
			Condition{Field: q, Value: CompositeKeyEntry{Err: ErrMultipleOperationsProvided}})
	default:
		c.Conds = append(c.Conds,
			Condition{Field: q, Value: CompositeKeyEntry{Key: options[0](v)}})
	}

	return c
}

func NotEq(v any) Key {
	return Key{Value: v, Operation: NotEqual}
}

func Gt(v any) Key {
	return Key{Value: v, Operation: GreaterThan}
}

func Lt(v any) Key {
	return Key{Value: v, Operation: LessThan}
}

// CompositeKeyGroup wraps a CompositeKey; groups are combined with AND when
// IsStrict, OR otherwise.
type CompositeKeyGroup struct {
	CompositeKey CompositeKey
	IsStrict     bool
}

func NewCompositeKeyGroup(ck CompositeKey) CompositeKeyGroup {
	return CompositeKeyGroup{
		CompositeKey: ck,
		IsStrict:     true,
	}
}

type Preload []string

// Update selects which fields a Patch writes. If All is true every field is
// written, zero values included; otherwise only non-zero fields are.
type Update struct {
	Fields []QueryField
	All    bool
}

type OrderField struct {
	Field     QueryField
	Direction OrderDirection
}

type Query struct {
	// Limit is a max size of returned elements.
	Limit int

	Offset int

	// CompositeKeyGroup forms the where part of the Query.
	CompositeKeyGroup []CompositeKeyGroup

	// PreloadModel specifies which associations to preload.
	PreloadModel Preload

	UpdateFields Update

	OrderFields []OrderField
}

// NewQuery creates and returns a new empty query.
func NewQuery() *Query {
	return &Query{
		CompositeKeyGroup: make([]CompositeKeyGroup, 0),
		UpdateFields: Update{
			Fields: make([]QueryField, 0),
			All:    false,
		},
	}
}

func (q *Query) Where(groups ...CompositeKeyGroup) *Query {
	q.CompositeKeyGroup = append(q.CompositeKeyGroup, groups...)
	return q
}

func (q *Query) Preload(models ...string) *Query {
	q.PreloadModel = append(q.PreloadModel, models...)
	return q
}

func (q *Query) Order(field QueryField, direction OrderDirection) *Query {
	q.OrderFields = append(q.OrderFields, OrderField{Field: field, Direction: direction})
	return q
}

func (q *Query) UpdateAll() *Query {
	q.UpdateFields.All = true
	return q
}

func (q *Query) UpdateOnly(fields ...QueryField) *Query {
	q.UpdateFields.Fields = append(q.UpdateFields.Fields, fields...)
	return q
}

func (q *Query) SetLimit(limit int) *Query {
	q.Limit = limit
	return q
}

func (q *Query) SetOffset(offset int) *Query {
	q.Offset = offset
	return q
}
