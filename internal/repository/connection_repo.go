package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
)

// ConnectionRepository provides data access for connection requests.
// All lookups go through the canonical unordered pair key, so the
// direction of a query never matters.
type ConnectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new repository bound to the given DB handle.
func NewConnectionRepository(database *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: database}
}

// GetByPair returns the request row for the unordered pair (a, b), or nil.
func (r *ConnectionRepository) GetByPair(ctx context.Context, a, b identity.Principal) (*db.ConnectionRequest, error) {
	var req db.ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", identity.PairKey(a, b)).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Save inserts the request, or overwrites the pair's previous (rejected)
// row. The caller is responsible for checking that no live request holds
// the slot.
func (r *ConnectionRepository) Save(ctx context.Context, req *db.ConnectionRequest) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"from_owner", "to_owner", "status", "updated_at"}),
		}).
		Create(req).Error
}

// UpdateStatus advances the request for pairKey to the given status.
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, pairKey, status string) error {
	return r.db.WithContext(ctx).
		Model(&db.ConnectionRequest{}).
		Where("pair_key = ?", pairKey).
		Update("status", status).Error
}

// IsConnected reports whether an accepted request exists between a and b.
func (r *ConnectionRepository) IsConnected(ctx context.Context, a, b identity.Principal) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.ConnectionRequest{}).
		Where("pair_key = ? AND status = ?", identity.PairKey(a, b), db.RequestAccepted).
		Count(&count).Error
	return count > 0, err
}

// ListAcceptedFor returns the accepted rows involving the given principal,
// in pair-key order.
func (r *ConnectionRepository) ListAcceptedFor(ctx context.Context, p identity.Principal) ([]db.ConnectionRequest, error) {
	var reqs []db.ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("(from_owner = ? OR to_owner = ?) AND status = ?",
			p.String(), p.String(), db.RequestAccepted).
		Order("pair_key ASC").
		Find(&reqs).Error
	return reqs, err
}

// ListPendingFor returns the pending requests addressed to the given
// principal, newest first.
func (r *ConnectionRepository) ListPendingFor(ctx context.Context, to identity.Principal) ([]db.ConnectionRequest, error) {
	var reqs []db.ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("to_owner = ? AND status = ?", to.String(), db.RequestPending).
		Order("created_at DESC, pair_key ASC").
		Find(&reqs).Error
	return reqs, err
}
