package mingle

import (
	"context"

	"github.com/metamingle/server/internal/db"
	svcErr "github.com/metamingle/server/internal/errors"
	"github.com/metamingle/server/internal/identity"
)

// GiftInput carries the caller-supplied catalog fields.
type GiftInput struct {
	Name        string
	Description string
	Price       uint64
}

func (in *GiftInput) validate() error {
	if err := boundedString("name", in.Name, MaxGiftNameLen); err != nil {
		return err
	}
	if in.Name == "" {
		return svcErr.InvalidField("name must not be empty")
	}
	return boundedString("description", in.Description, MaxGiftDescLen)
}

// CreateGift adds an entry to the shared catalog and returns its id. Any
// caller may create gifts; ids are gap-free and start at 0.
func (s *Service) CreateGift(ctx context.Context, caller identity.Principal, in GiftInput) (uint64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	var id uint64
	err := s.atomically(func(r repos) error {
		var err error
		id, err = r.counters.Allocate(ctx, db.CounterGift)
		if err != nil {
			return err
		}
		return r.gifts.CreateGift(ctx, &db.Gift{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Creator:     caller.String(),
		})
	})
	if err != nil {
		return 0, err
	}

	s.appCtx.Logger.Info("gift created", "id", id, "creator", caller.String())
	return id, nil
}

// GetGift returns the gift with the given id, or nil when none exists.
func (s *Service) GetGift(ctx context.Context, id uint64) (*db.Gift, error) {
	return s.readRepos().gifts.GetGift(ctx, id)
}

// SendGift appends a transfer of the gift from the caller to `to`. The
// ledger records the exchange only; price settlement happens elsewhere.
func (s *Service) SendGift(ctx context.Context, caller identity.Principal, giftID uint64, to identity.Principal) error {
	err := s.atomically(func(r repos) error {
		gift, err := r.gifts.GetGift(ctx, giftID)
		if err != nil {
			return err
		}
		if gift == nil {
			return svcErr.ErrGiftNotFound
		}

		for _, p := range []identity.Principal{caller, to} {
			exists, err := r.profiles.Exists(ctx, p)
			if err != nil {
				return err
			}
			if !exists {
				return svcErr.ErrProfileNotFound
			}
		}

		if to == caller {
			return svcErr.ErrSelfGift
		}

		return r.gifts.CreateTransfer(ctx, &db.GiftTransfer{
			GiftID: giftID,
			From:   caller.String(),
			To:     to.String(),
		})
	})
	if err != nil {
		return err
	}

	s.appCtx.Logger.Info("gift sent",
		"gift_id", giftID, "from", caller.String(), "to", to.String())
	return nil
}

// ListGiftTransfers returns the caller's sent and received transfers,
// newest first, cursor paginated.
func (s *Service) ListGiftTransfers(ctx context.Context, caller identity.Principal, paginationToken *string, limit int) ([]db.GiftTransfer, *string, error) {
	r := s.readRepos()

	exists, err := r.profiles.Exists(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, svcErr.ErrProfileNotFound
	}
	return r.gifts.ListTransfersFor(ctx, caller, paginationToken, clampLimit(limit))
}
