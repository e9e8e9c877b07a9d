package mingle

import (
	"context"

	"github.com/metamingle/server/internal/db"
	svcErr "github.com/metamingle/server/internal/errors"
	"github.com/metamingle/server/internal/identity"
)

// ProfileInput carries the caller-supplied profile fields.
type ProfileInput struct {
	Name      string
	Bio       string
	Age       uint32
	Interests []string
}

func (in *ProfileInput) validate() error {
	if err := boundedString("name", in.Name, MaxNameLen); err != nil {
		return err
	}
	if in.Name == "" {
		return svcErr.InvalidField("name must not be empty")
	}
	if err := boundedString("bio", in.Bio, MaxBioLen); err != nil {
		return err
	}
	if in.Age == 0 {
		return svcErr.InvalidField("age must be positive")
	}
	return validateInterests(in.Interests)
}

// CreateProfile registers the caller's profile. Each principal gets
// exactly one.
func (s *Service) CreateProfile(ctx context.Context, caller identity.Principal, in ProfileInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	err := s.atomically(func(r repos) error {
		exists, err := r.profiles.Exists(ctx, caller)
		if err != nil {
			return err
		}
		if exists {
			return svcErr.ErrProfileAlreadyExists
		}
		return r.profiles.Create(ctx, &db.Profile{
			Owner:     caller.String(),
			Name:      in.Name,
			Bio:       in.Bio,
			Age:       in.Age,
			Interests: in.Interests,
		})
	})
	if err != nil {
		return err
	}

	s.appCtx.Logger.Info("profile created", "owner", caller.String())
	return nil
}

// GetProfile returns the subject's profile, or nil when none exists.
// Absence is an empty result, not an error.
func (s *Service) GetProfile(ctx context.Context, subject identity.Principal) (*db.Profile, error) {
	return s.readRepos().profiles.Get(ctx, subject)
}

// UpdateProfile replaces the caller's profile fields wholesale. Only the
// owner can do this; the owner's cached matches are invalidated because
// their scores may no longer hold.
func (s *Service) UpdateProfile(ctx context.Context, caller identity.Principal, in ProfileInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	err := s.atomically(func(r repos) error {
		exists, err := r.profiles.Exists(ctx, caller)
		if err != nil {
			return err
		}
		if !exists {
			return svcErr.ErrProfileNotFound
		}
		return r.profiles.Update(ctx, &db.Profile{
			Owner:     caller.String(),
			Name:      in.Name,
			Bio:       in.Bio,
			Age:       in.Age,
			Interests: in.Interests,
		})
	})
	if err != nil {
		return err
	}

	if err := s.appCtx.RedisCache.InvalidateMatches(ctx, caller); err != nil {
		s.appCtx.Logger.Warn("failed to invalidate match cache", "owner", caller.String(), "err", err)
	}
	return nil
}
