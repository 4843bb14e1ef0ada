package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// IBaseRepository provides the lookups shared by every aggregate plus the
// sort-column whitelist used by paginated listings.
type IBaseRepository[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
	Count(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
	IsAllowedSortColumn(column string) bool
}

// BaseRepository implements IBaseRepository on top of a *gorm.DB, which may
// be a transaction handle.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]struct{}
}

func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortColumns: map[string]struct{}{}}
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]struct{}, len(columns))
	for _, column := range columns {
		r.allowedSortColumns[column] = struct{}{}
	}
}

func (r *BaseRepository[T]) IsAllowedSortColumn(column string) bool {
	_, ok := r.allowedSortColumns[column]
	return ok
}
