package model

import "time"

const (
	FieldID        = "_id"
	FieldName      = "name"
	FieldPrice     = "price"
	FieldCategory  = "category"
	FieldStock     = "stock"
	FieldCreatedAt = "createdAt"
	FieldStatus    = "status"
	FieldUser      = "user"
	FieldGender    = "gender"
	FieldRole      = "role"
	FieldCode      = "code"
)

type Operator string

const (
	OpEq           Operator = "eq"
	OpGt           Operator = "gt"
	OpGte          Operator = "gte"
	OpLt           Operator = "lt"
	OpLte          Operator = "lte"
	OpContainsFold Operator = "containsFold"
)

// Predicate is a single (field, operator, value) condition. Values are plain
// strings, numbers or time.Time.
type Predicate struct {
	Field    string
	Operator Operator
	Value    interface{}
}

// Filter is a conjunction of predicates. An empty filter matches everything.
type Filter []Predicate

type FilterBuilder struct {
	predicates Filter
}

func NewFilter() *FilterBuilder {
	return &FilterBuilder{}
}

func (b *FilterBuilder) add(field string, op Operator, value interface{}) *FilterBuilder {
	b.predicates = append(b.predicates, Predicate{Field: field, Operator: op, Value: value})
	return b
}

func (b *FilterBuilder) Eq(field string, value interface{}) *FilterBuilder {
	return b.add(field, OpEq, value)
}

func (b *FilterBuilder) Gt(field string, value interface{}) *FilterBuilder {
	return b.add(field, OpGt, value)
}

func (b *FilterBuilder) Gte(field string, value interface{}) *FilterBuilder {
	return b.add(field, OpGte, value)
}

func (b *FilterBuilder) Lt(field string, value interface{}) *FilterBuilder {
	return b.add(field, OpLt, value)
}

func (b *FilterBuilder) Lte(field string, value interface{}) *FilterBuilder {
	return b.add(field, OpLte, value)
}

func (b *FilterBuilder) ContainsFold(field, value string) *FilterBuilder {
	return b.add(field, OpContainsFold, value)
}

// CreatedBetween limits createdAt to [from, to).
func (b *FilterBuilder) CreatedBetween(from, to time.Time) *FilterBuilder {
	return b.Gte(FieldCreatedAt, from).Lt(FieldCreatedAt, to)
}

func (b *FilterBuilder) Build() Filter {
	out := make(Filter, len(b.predicates))
	copy(out, b.predicates)
	return out
}

type SortOrder int

const (
	Ascending  SortOrder = 1
	Descending SortOrder = -1
)

type Sort struct {
	Field string
	Order SortOrder
}

// Query is a filtered, sorted and paginated lookup. A zero Limit means no limit.
type Query struct {
	Filter Filter
	Sort   *Sort
	Skip   int64
	Limit  int64
}

func NewestFirst() *Sort {
	return &Sort{Field: FieldCreatedAt, Order: Descending}
}
