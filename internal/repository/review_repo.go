package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
)

// ReviewRepository provides data access for date reviews.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new repository bound to the given DB handle.
func NewReviewRepository(database *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: database}
}

// Get returns the review written by reviewer for dateID, or nil.
func (r *ReviewRepository) Get(ctx context.Context, dateID uint64, reviewer identity.Principal) (*db.Review, error) {
	var review db.Review
	err := r.db.WithContext(ctx).
		Where("date_id = ? AND reviewer = ?", dateID, reviewer.String()).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create inserts a review row.
func (r *ReviewRepository) Create(ctx context.Context, review *db.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListForDate returns all reviews of a date, ordered by reviewer for
// determinism (a date has at most two).
func (r *ReviewRepository) ListForDate(ctx context.Context, dateID uint64) ([]db.Review, error) {
	var reviews []db.Review
	err := r.db.WithContext(ctx).
		Where("date_id = ?", dateID).
		Order("reviewer ASC").
		Find(&reviews).Error
	return reviews, err
}
