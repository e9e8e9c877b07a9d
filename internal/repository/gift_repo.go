package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/utils/pagination"
)

// GiftRepository provides data access for the gift catalog and the
// append-only transfer ledger.
type GiftRepository struct {
	db *gorm.DB
}

// NewGiftRepository creates a new repository bound to the given DB handle.
func NewGiftRepository(database *gorm.DB) *GiftRepository {
	return &GiftRepository{db: database}
}

// CreateGift inserts a catalog entry with its pre-allocated id.
func (r *GiftRepository) CreateGift(ctx context.Context, gift *db.Gift) error {
	return r.db.WithContext(ctx).Create(gift).Error
}

// GetGift returns the gift with the given id, or nil if absent.
func (r *GiftRepository) GetGift(ctx context.Context, id uint64) (*db.Gift, error) {
	var gift db.Gift
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&gift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

// CreateTransfer appends a transfer record to the ledger.
func (r *GiftRepository) CreateTransfer(ctx context.Context, transfer *db.GiftTransfer) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

// ListTransfersFor returns transfers the principal sent or received,
// newest first.
//
// Behavior:
//   - Ordered by seq DESC (insertion order is the only order the ledger has).
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	repo.ListTransfersFor(ctx, "wallet_1", nil, 20)
func (r *GiftRepository) ListTransfersFor(
	ctx context.Context,
	owner identity.Principal,
	paginationToken *string,
	limit int,
) ([]db.GiftTransfer, *string, error) {
	var transfers []db.GiftTransfer

	// decode cursor if provided
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Where("from_owner = ? OR to_owner = ?", owner.String(), owner.String()).
		Order("seq DESC").
		Limit(limit + 1)

	// apply cursor
	if cursor.LastSeq > 0 {
		query = query.Where("seq < ?", cursor.LastSeq)
	}

	if err := query.Find(&transfers).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(transfers) > limit {
		last := transfers[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{LastSeq: last.Seq})
		nextToken = &token
		transfers = transfers[:limit]
	}

	return transfers, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
