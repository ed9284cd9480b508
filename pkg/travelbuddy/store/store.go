// Package store is the tabular storage boundary used by listings, joins and
// the dashboard. The table is implied by the model type passed in.
package store

//go:generate mockgen -destination=storemock/store.go -package=storemock github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store Store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter matches rows whose Column equals Value
type Filter struct {
	Column string
	Value  any
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Order sorts results by a column
type Order struct {
	Column string
	Desc   bool
}

// Query is a filtered, ordered selection
type Query struct {
	Filters []Filter
	Order   []Order
	Limit   int
}

// Where starts a query with the given filters.
func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

// Asc appends an ascending sort on column.
func (q Query) Asc(column string) Query {
	q.Order = append(q.Order, Order{Column: column})
	return q
}

// Desc appends a descending sort on column.
func (q Query) Desc(column string) Query {
	q.Order = append(q.Order, Order{Column: column, Desc: true})
	return q
}

// Take limits the number of rows returned.
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// Store is the select/insert/update/delete surface of the backing database.
//
// Select fills dest, a pointer to a slice of models. Insert takes a pointer
// to a model and fills generated fields. Update and Delete take a model
// value (usually a zero pointer) naming the table and report affected rows.
type Store interface {
	Select(ctx context.Context, dest any, q Query) error
	Insert(ctx context.Context, row any) error
	Update(ctx context.Context, model any, filters []Filter, patch map[string]any) (int64, error)
	Delete(ctx context.Context, model any, filters []Filter) (int64, error)
}

// GormStore implements Store on top of a gorm connection
type GormStore struct {
	db *gorm.DB
}

// New creates a gorm-backed store
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func where(tx *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return tx
}

func (s *GormStore) Select(ctx context.Context, dest any, q Query) error {
	tx := where(s.db.WithContext(ctx), q.Filters)
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx.Find(dest).Error
}

func (s *GormStore) Insert(ctx context.Context, row any) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *GormStore) Update(ctx context.Context, model any, filters []Filter, patch map[string]any) (int64, error) {
	result := where(s.db.WithContext(ctx).Model(model), filters).Updates(patch)
	return result.RowsAffected, result.Error
}

func (s *GormStore) Delete(ctx context.Context, model any, filters []Filter) (int64, error) {
	result := where(s.db.WithContext(ctx), filters).Delete(model)
	return result.RowsAffected, result.Error
}
