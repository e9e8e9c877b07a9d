package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
)

// ProfileRepository provides data access methods for the Profile model.
// Repositories are cheap value wrappers; services construct them against
// the transaction handle of the operation in flight.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB handle.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// Get returns the profile owned by the given principal, or nil if absent.
// Absence is an empty result, not an error.
func (r *ProfileRepository) Get(ctx context.Context, owner identity.Principal) (*db.Profile, error) {
	var profile db.Profile
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner.String()).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Exists reports whether the principal has a profile.
func (r *ProfileRepository) Exists(ctx context.Context, owner identity.Principal) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Where("owner = ?", owner.String()).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new profile row.
func (r *ProfileRepository) Create(ctx context.Context, profile *db.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Update overwrites the mutable fields of an existing profile.
func (r *ProfileRepository) Update(ctx context.Context, profile *db.Profile) error {
	return r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Where("owner = ?", profile.Owner).
		Select("name", "bio", "age", "interests").
		Updates(profile).Error
}

// ListOthers returns every profile except the given owner's, in stable
// owner order.
func (r *ProfileRepository) ListOthers(ctx context.Context, owner identity.Principal) ([]db.Profile, error) {
	var profiles []db.Profile
	err := r.db.WithContext(ctx).
		Where("owner <> ?", owner.String()).
		Order("owner ASC").
		Find(&profiles).Error
	return profiles, err
}
