package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
)

// MatchRepository provides data access for generated match entries.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB handle.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// ReplaceForOwner atomically supersedes the owner's previous generation
// with the given entries (already ranked). Must run inside the
// generate-matches transaction so a failure leaves the old set intact.
func (r *MatchRepository) ReplaceForOwner(ctx context.Context, owner identity.Principal, entries []db.MatchEntry) error {
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner.String()).
		Delete(&db.MatchEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

// ListForOwner returns the owner's generated entries in presentation
// order. An owner who never generated gets an empty slice.
func (r *MatchRepository) ListForOwner(ctx context.Context, owner identity.Principal) ([]db.MatchEntry, error) {
	var entries []db.MatchEntry
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner.String()).
		Order("match_rank ASC").
		Find(&entries).Error
	return entries, err
}
