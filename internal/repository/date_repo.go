package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/metamingle/server/internal/db"
)

// DateRepository provides data access for scheduled dates.
type DateRepository struct {
	db *gorm.DB
}

// NewDateRepository creates a new repository bound to the given DB handle.
func NewDateRepository(database *gorm.DB) *DateRepository {
	return &DateRepository{db: database}
}

// Create inserts a date row with its pre-allocated id.
func (r *DateRepository) Create(ctx context.Context, date *db.Date) error {
	return r.db.WithContext(ctx).Create(date).Error
}

// Get returns the date with the given id, or nil if absent.
func (r *DateRepository) Get(ctx context.Context, id uint64) (*db.Date, error) {
	var date db.Date
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// MarkCompleted transitions a date to Completed. Idempotent: completing an
// already-completed date is a no-op.
func (r *DateRepository) MarkCompleted(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&db.Date{}).
		Where("id = ?", id).
		Update("status", db.DateCompleted).Error
}
