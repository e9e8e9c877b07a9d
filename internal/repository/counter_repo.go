package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/metamingle/server/internal/db"
)

// CounterRepository hands out gap-free sequential ids per counter name.
// Allocation must run inside the transaction of the operation consuming
// the id, so an aborted operation never burns one. Operations are
// externally serialized, so no row locking is needed.
type CounterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new repository bound to the given DB handle.
func NewCounterRepository(database *gorm.DB) *CounterRepository {
	return &CounterRepository{db: database}
}

// Allocate returns the next id for the named counter and advances it.
// The first allocation for a name returns 0.
func (r *CounterRepository) Allocate(ctx context.Context, name string) (uint64, error) {
	var counter db.Counter
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&counter).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = db.Counter{Name: name, Next: 1}
		if err := r.db.WithContext(ctx).Create(&counter).Error; err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	id := counter.Next
	err = r.db.WithContext(ctx).
		Model(&db.Counter{}).
		Where("name = ?", name).
		Update("next", id+1).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}
