package mingle

import (
	"context"
	"sort"

	"github.com/metamingle/server/internal/cache"
	"github.com/metamingle/server/internal/db"
	svcErr "github.com/metamingle/server/internal/errors"
	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/match"
)

// GenerateMatches recomputes the caller's compatibility scores against
// every other profile and supersedes the previous generation wholesale.
// The DB rows are the durable copy; the ordered list is also primed into
// Redis for reads.
func (s *Service) GenerateMatches(ctx context.Context, caller identity.Principal) error {
	var ranked []cache.ScoredCounterpart

	err := s.atomically(func(r repos) error {
		own, err := r.profiles.Get(ctx, caller)
		if err != nil {
			return err
		}
		if own == nil {
			return svcErr.ErrProfileNotFound
		}

		others, err := r.profiles.ListOthers(ctx, caller)
		if err != nil {
			return err
		}

		ranked = make([]cache.ScoredCounterpart, 0, len(others))
		for i := range others {
			ranked = append(ranked, cache.ScoredCounterpart{
				Counterpart: others[i].Owner,
				Score:       match.Score(own, &others[i]),
			})
		}

		// descending score, ties by ascending counterpart
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Score != ranked[j].Score {
				return ranked[i].Score > ranked[j].Score
			}
			return ranked[i].Counterpart < ranked[j].Counterpart
		})

		entries := make([]db.MatchEntry, len(ranked))
		for i, rc := range ranked {
			entries[i] = db.MatchEntry{
				Owner:       caller.String(),
				Counterpart: rc.Counterpart,
				Score:       rc.Score,
				Rank:        i,
			}
		}
		return r.matches.ReplaceForOwner(ctx, caller, entries)
	})
	if err != nil {
		return err
	}

	// prime the read cache; the DB commit already succeeded. If the write
	// fails, drop any previously cached list so reads fall back to the
	// fresh rows instead of a superseded generation.
	if err := s.appCtx.RedisCache.SetMatches(ctx, caller, ranked); err != nil {
		s.appCtx.Logger.Warn("failed to cache matches", "owner", caller.String(), "err", err)
		if derr := s.appCtx.RedisCache.InvalidateMatches(ctx, caller); derr != nil {
			s.appCtx.Logger.Warn("failed to drop stale match cache", "owner", caller.String(), "err", derr)
		}
	}

	s.appCtx.Logger.Info("matches generated", "owner", caller.String(), "count", len(ranked))
	return nil
}

// GetMatches returns the caller's generated match list in presentation
// order. A caller who never generated gets an empty list.
func (s *Service) GetMatches(ctx context.Context, caller identity.Principal) ([]cache.ScoredCounterpart, error) {
	r := s.readRepos()

	exists, err := r.profiles.Exists(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, svcErr.ErrProfileNotFound
	}

	if list, hit, err := s.appCtx.RedisCache.GetMatches(ctx, caller); err != nil {
		s.appCtx.Logger.Warn("match cache read failed", "owner", caller.String(), "err", err)
	} else if hit {
		return list, nil
	}

	entries, err := r.matches.ListForOwner(ctx, caller)
	if err != nil {
		return nil, err
	}

	list := make([]cache.ScoredCounterpart, len(entries))
	for i, e := range entries {
		list[i] = cache.ScoredCounterpart{Counterpart: e.Counterpart, Score: e.Score}
	}

	if len(list) > 0 {
		if err := s.appCtx.RedisCache.SetMatches(ctx, caller, list); err != nil {
			s.appCtx.Logger.Warn("failed to re-prime match cache", "owner", caller.String(), "err", err)
		}
	}
	return list, nil
}
