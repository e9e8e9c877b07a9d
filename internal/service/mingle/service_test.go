package mingle_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/metamingle/server/internal/app"
	"github.com/metamingle/server/internal/cache"
	"github.com/metamingle/server/internal/config"
	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/service/mingle"
)

//
// Test helpers
//

// setupService spins up an in-memory SQLite DB, applies migrations, starts
// a miniredis, and wires everything into a Service instance.
//
// Each test gets its own isolated DB + Redis.
func setupService(t *testing.T) (*mingle.Service, *gorm.DB) {
	t.Helper()
	svc, dbase, _ := setupServiceWithCache(t)
	return svc, dbase
}

// setupServiceWithCache also exposes the cache for tests that manipulate
// Redis directly.
func setupServiceWithCache(t *testing.T) (*mingle.Service, *gorm.DB, *cache.RedisCache) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(db.AllModels()...))

	// Fake Redis
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests

	appCtx := app.New(dbase, redisCache, logger)
	return mingle.NewService(appCtx), dbase, redisCache
}

// mustCreateProfile registers a profile or fails the test.
func mustCreateProfile(t *testing.T, svc *mingle.Service, owner identity.Principal, age uint32, interests ...string) {
	t.Helper()
	require.NoError(t, svc.CreateProfile(context.Background(), owner, mingle.ProfileInput{
		Name:      "User " + owner.String(),
		Bio:       "test profile",
		Age:       age,
		Interests: interests,
	}))
}

// mustConnect creates an accepted connection between a and b.
func mustConnect(t *testing.T, svc *mingle.Service, a, b identity.Principal) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.SendConnectionRequest(ctx, a, b))
	require.NoError(t, svc.RespondToRequest(ctx, b, a, true))
}
