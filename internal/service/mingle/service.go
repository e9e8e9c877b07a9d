// Package mingle implements the application's state machine: profile
// registry, connection requests, date scheduling, reviews, the gift
// economy, and match generation.
//
// Every public method is one atomic operation: it validates against the
// current state and either commits its full delta or fails with a typed
// error and no observable mutation. Mutating methods run inside a single
// gorm transaction; callers are externally serialized, so operations never
// observe concurrent writes.
package mingle

import (
	"strings"

	"gorm.io/gorm"

	"github.com/metamingle/server/internal/app"
	svcErr "github.com/metamingle/server/internal/errors"
	"github.com/metamingle/server/internal/repository"
)

// Field bounds. Violations fail with InvalidField before any write.
const (
	MaxNameLen      = 64
	MaxBioLen       = 256
	MaxLocationLen  = 128
	MaxCommentLen   = 256
	MaxGiftNameLen  = 64
	MaxGiftDescLen  = 256
	MaxInterests    = 10
	MaxInterestLen  = 32
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service holds the shared dependencies of all operations.
type Service struct {
	appCtx *app.AppContext
}

// NewService creates the service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

// repos bundles per-transaction repositories so each operation's reads and
// writes share one handle (the transaction, or the plain DB for reads).
type repos struct {
	profiles    *repository.ProfileRepository
	connections *repository.ConnectionRepository
	dates       *repository.DateRepository
	reviews     *repository.ReviewRepository
	gifts       *repository.GiftRepository
	matches     *repository.MatchRepository
	counters    *repository.CounterRepository
}

func newRepos(handle *gorm.DB) repos {
	return repos{
		profiles:    repository.NewProfileRepository(handle),
		connections: repository.NewConnectionRepository(handle),
		dates:       repository.NewDateRepository(handle),
		reviews:     repository.NewReviewRepository(handle),
		gifts:       repository.NewGiftRepository(handle),
		matches:     repository.NewMatchRepository(handle),
		counters:    repository.NewCounterRepository(handle),
	}
}

// readRepos binds repositories to the plain connection for read-only ops.
func (s *Service) readRepos() repos {
	return newRepos(s.appCtx.DB)
}

// atomically runs fn inside a transaction; any error rolls back the whole
// delta.
func (s *Service) atomically(fn func(r repos) error) error {
	return s.appCtx.DB.Transaction(func(tx *gorm.DB) error {
		return fn(newRepos(tx))
	})
}

func boundedString(field, value string, max int) error {
	if len(value) > max {
		return svcErr.InvalidField(field + " exceeds maximum length")
	}
	return nil
}

func validateInterests(interests []string) error {
	if len(interests) > MaxInterests {
		return svcErr.InvalidField("too many interests")
	}
	for _, s := range interests {
		if strings.TrimSpace(s) == "" {
			return svcErr.InvalidField("empty interest")
		}
		if len(s) > MaxInterestLen {
			return svcErr.InvalidField("interest exceeds maximum length")
		}
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
