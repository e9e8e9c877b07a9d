package mingle

import (
	"context"

	"github.com/metamingle/server/internal/db"
	svcErr "github.com/metamingle/server/internal/errors"
	"github.com/metamingle/server/internal/identity"
)

// SubmitReview records the caller's review of a date and marks the date
// Completed. Completion is idempotent; a second review of the same date by
// the same reviewer is not. A failed validation leaves both the date and
// the review ledger untouched.
func (s *Service) SubmitReview(ctx context.Context, caller identity.Principal, dateID uint64, reviewee identity.Principal, rating uint32, comment string) error {
	if err := boundedString("comment", comment, MaxCommentLen); err != nil {
		return err
	}

	return s.atomically(func(r repos) error {
		date, err := r.dates.Get(ctx, dateID)
		if err != nil {
			return err
		}
		if date == nil {
			return svcErr.ErrDateNotFound
		}

		// caller and reviewee must be exactly the two participants
		pair := identity.PairKey(caller, reviewee)
		if caller == reviewee ||
			pair != identity.PairKey(identity.Principal(date.Scheduler), identity.Principal(date.Invitee)) {
			return svcErr.ErrNotParticipant
		}

		if rating < 1 || rating > 5 {
			return svcErr.ErrInvalidRating
		}

		existing, err := r.reviews.Get(ctx, dateID, caller)
		if err != nil {
			return err
		}
		if existing != nil {
			return svcErr.ErrDuplicateReview
		}

		if err := r.reviews.Create(ctx, &db.Review{
			DateID:   dateID,
			Reviewer: caller.String(),
			Reviewee: reviewee.String(),
			Rating:   rating,
			Comment:  comment,
		}); err != nil {
			return err
		}
		return r.dates.MarkCompleted(ctx, dateID)
	})
}

// ListDateReviews returns the reviews of a date. The date must exist.
func (s *Service) ListDateReviews(ctx context.Context, dateID uint64) ([]db.Review, error) {
	r := s.readRepos()

	date, err := r.dates.Get(ctx, dateID)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, svcErr.ErrDateNotFound
	}
	return r.reviews.ListForDate(ctx, dateID)
}
