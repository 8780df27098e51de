package query

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
)

const (
	DefaultLimit = 15
	MaxLimit     = 100
	NoLimit      = -1
)

// Filters maps column names to the exact value they must equal.
type Filters map[string]interface{}

type In struct {
	Column string
	Values interface{}
}

type Options struct {
	Filters Filters
	LastID  *int64
	Limit   int
	In      *In
	Desc    bool
}

func where(tx *gorm.DB, filters Filters) *gorm.DB {
	if len(filters) > 0 {
		tx = tx.Where(map[string]interface{}(filters))
	}
	return tx
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperror.ErrNotFound)
	}
	return err
}

func tableName(db *gorm.DB, model interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil || stmt.Schema == nil {
		return "record"
	}
	return stmt.Schema.Table
}

func GetOne[T any](ctx context.Context, db *gorm.DB, filters Filters) (*T, error) {
	var out T
	if err := where(db.WithContext(ctx), filters).First(&out).Error; err != nil {
		return nil, notFound(err, tableName(db, &out))
	}
	return &out, nil
}

func GetOneLatest[T any](ctx context.Context, db *gorm.DB, filters Filters) (*T, error) {
	var out T
	if err := where(db.WithContext(ctx), filters).Last(&out).Error; err != nil {
		return nil, notFound(err, tableName(db, &out))
	}
	return &out, nil
}

// InternalIDOf resolves the pagination boundary for a public id.
func InternalIDOf[T any](ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	var ids []int64
	err := db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Limit(1).
		Pluck("internal_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("last_id %d: %w", id, apperror.ErrNotFound)
	}
	return ids[0], nil
}

// GetMany returns up to opts.Limit rows ordered by internal_id, starting
// strictly after the row identified by opts.LastID. A zero LastID starts from
// the beginning since no row has public id 0.
func GetMany[T any](ctx context.Context, db *gorm.DB, opts Options) ([]T, error) {
	out := []T{}
	if opts.Limit == 0 {
		return out, nil
	}

	tx := where(db.WithContext(ctx).Model(new(T)), opts.Filters)

	if opts.LastID != nil && *opts.LastID != 0 {
		boundary, err := InternalIDOf[T](ctx, db, *opts.LastID)
		if err != nil {
			return nil, err
		}
		if opts.Desc {
			tx = tx.Where("internal_id < ?", boundary)
		} else {
			tx = tx.Where("internal_id > ?", boundary)
		}
	}

	if opts.In != nil {
		tx = tx.Where(clause.IN{Column: clause.Column{Name: opts.In.Column}, Values: toValues(opts.In.Values)})
	}

	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "internal_id"}, Desc: opts.Desc})
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}

	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func toValues(v interface{}) []interface{} {
	switch vals := v.(type) {
	case []interface{}:
		return vals
	case []int64:
		out := make([]interface{}, len(vals))
		for i, x := range vals {
			out[i] = x
		}
		return out
	case []string:
		out := make([]interface{}, len(vals))
		for i, x := range vals {
			out[i] = x
		}
		return out
	default:
		return []interface{}{v}
	}
}

func Count[T any](ctx context.Context, db *gorm.DB, distinct string, filters Filters) (int64, error) {
	var n int64
	tx := where(db.WithContext(ctx).Model(new(T)), filters)
	if distinct != "" {
		tx = tx.Distinct(distinct)
	}
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

type groupCount[K comparable] struct {
	GroupKey   K     `gorm:"column:group_key"`
	GroupCount int64 `gorm:"column:group_count"`
}

// CountBy groups matching rows by column and counts each group.
func CountBy[T any, K comparable](ctx context.Context, db *gorm.DB, column string, filters Filters) (map[K]int64, error) {
	var rows []groupCount[K]
	err := where(db.WithContext(ctx).Model(new(T)), filters).
		Select(column + " AS group_key, COUNT(*) AS group_count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[K]int64, len(rows))
	for _, r := range rows {
		out[r.GroupKey] = r.GroupCount
	}
	return out, nil
}

func Create[T any](ctx context.Context, db *gorm.DB, record *T) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

// UpdateOne applies changes to a loaded record and reloads it.
func UpdateOne[T any](ctx context.Context, db *gorm.DB, record *T, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Model(record).Omit(clause.Associations).Updates(changes).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Take(record).Error
}

func UpdateMany[T any](ctx context.Context, db *gorm.DB, filters Filters, changes map[string]interface{}) (int64, error) {
	if len(filters) == 0 {
		return 0, errors.New("update without filters")
	}
	res := where(db.WithContext(ctx).Model(new(T)), filters).Updates(changes)
	return res.RowsAffected, res.Error
}

func DeleteMany[T any](ctx context.Context, db *gorm.DB, filters Filters) (int64, error) {
	if len(filters) == 0 {
		return 0, errors.New("delete without filters")
	}
	res := where(db.WithContext(ctx), filters).Delete(new(T))
	return res.RowsAffected, res.Error
}
