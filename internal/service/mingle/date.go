package mingle

import (
	"context"

	"github.com/metamingle/server/internal/db"
	svcErr "github.com/metamingle/server/internal/errors"
	"github.com/metamingle/server/internal/identity"
)

// ScheduleDate records a virtual date between the caller and `with`, who
// must share an accepted connection. Returns the allocated date id; ids
// are gap-free and start at 0. A failed call never consumes an id.
func (s *Service) ScheduleDate(ctx context.Context, caller, with identity.Principal, scheduledAt int64, location string) (uint64, error) {
	if err := boundedString("location", location, MaxLocationLen); err != nil {
		return 0, err
	}

	var id uint64
	err := s.atomically(func(r repos) error {
		for _, p := range []identity.Principal{caller, with} {
			exists, err := r.profiles.Exists(ctx, p)
			if err != nil {
				return err
			}
			if !exists {
				return svcErr.ErrProfileNotFound
			}
		}

		// covers with == caller: no pair can be connected to itself
		connected, err := r.connections.IsConnected(ctx, caller, with)
		if err != nil {
			return err
		}
		if !connected {
			return svcErr.ErrNotConnected
		}

		id, err = r.counters.Allocate(ctx, db.CounterDate)
		if err != nil {
			return err
		}
		return r.dates.Create(ctx, &db.Date{
			ID:          id,
			Scheduler:   caller.String(),
			Invitee:     with.String(),
			ScheduledAt: scheduledAt,
			Location:    location,
			Status:      db.DateScheduled,
		})
	})
	if err != nil {
		return 0, err
	}

	s.appCtx.Logger.Info("date scheduled",
		"id", id, "scheduler", caller.String(), "invitee", with.String())
	return id, nil
}

// GetDate returns the date with the given id, or nil when none exists.
func (s *Service) GetDate(ctx context.Context, id uint64) (*db.Date, error) {
	return s.readRepos().dates.Get(ctx, id)
}
