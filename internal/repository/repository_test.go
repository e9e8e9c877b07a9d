package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestCounterAllocate(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewCounterRepository(dbase)

	for want := uint64(0); want < 3; want++ {
		id, err := repo.Allocate(ctx, db.CounterDate)
		assert.NoError(t, err)
		assert.Equal(t, want, id)
	}

	// independent counters do not interfere
	id, err := repo.Allocate(ctx, db.CounterGift)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), id)
}

func TestCounterAllocate_RollbackDoesNotBurnIDs(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)

	// an aborted transaction must not consume the id
	_ = dbase.Transaction(func(tx *gorm.DB) error {
		id, err := repository.NewCounterRepository(tx).Allocate(ctx, db.CounterDate)
		assert.NoError(t, err)
		assert.Equal(t, uint64(0), id)
		return assert.AnError
	})

	id, err := repository.NewCounterRepository(dbase).Allocate(ctx, db.CounterDate)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), id)
}

func TestConnectionPairLookupIsDirectionless(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewConnectionRepository(dbase)

	a := identity.Principal("wallet_2")
	b := identity.Principal("wallet_1")

	err := repo.Save(ctx, &db.ConnectionRequest{
		PairKey: identity.PairKey(a, b),
		From:    a.String(),
		To:      b.String(),
		Status:  db.RequestPending,
	})
	assert.NoError(t, err)

	fromAB, err := repo.GetByPair(ctx, a, b)
	assert.NoError(t, err)
	fromBA, err := repo.GetByPair(ctx, b, a)
	assert.NoError(t, err)
	assert.NotNil(t, fromAB)
	assert.NotNil(t, fromBA)
	assert.Equal(t, fromAB.PairKey, fromBA.PairKey)

	connected, err := repo.IsConnected(ctx, a, b)
	assert.NoError(t, err)
	assert.False(t, connected)

	assert.NoError(t, repo.UpdateStatus(ctx, fromAB.PairKey, db.RequestAccepted))

	connected, err = repo.IsConnected(ctx, b, a)
	assert.NoError(t, err)
	assert.True(t, connected)
}

func TestListTransfersForPagination(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewGiftRepository(dbase)

	owner := identity.Principal("wallet_1")
	for i := 0; i < 5; i++ {
		to := "wallet_2"
		err := repo.CreateTransfer(ctx, &db.GiftTransfer{
			GiftID: 0, From: owner.String(), To: to,
		})
		assert.NoError(t, err)
	}
	// a transfer not involving the owner
	assert.NoError(t, repo.CreateTransfer(ctx, &db.GiftTransfer{
		GiftID: 0, From: "wallet_2", To: "wallet_3",
	}))

	page1, next, err := repo.ListTransfersFor(ctx, owner, nil, 3)
	assert.NoError(t, err)
	assert.Len(t, page1, 3)
	assert.NotNil(t, next)

	page2, next2, err := repo.ListTransfersFor(ctx, owner, next, 3)
	assert.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.Nil(t, next2)

	// descending seq across both pages
	assert.Greater(t, page1[0].Seq, page1[2].Seq)
	assert.Greater(t, page1[2].Seq, page2[0].Seq)
}

func TestMatchRepoReplaceForOwner(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	owner := identity.Principal("wallet_1")
	first := []db.MatchEntry{
		{Owner: owner.String(), Counterpart: "wallet_2", Score: 80, Rank: 0},
		{Owner: owner.String(), Counterpart: "wallet_3", Score: 40, Rank: 1},
	}
	assert.NoError(t, repo.ReplaceForOwner(ctx, owner, first))

	second := []db.MatchEntry{
		{Owner: owner.String(), Counterpart: "wallet_4", Score: 95, Rank: 0},
	}
	assert.NoError(t, repo.ReplaceForOwner(ctx, owner, second))

	entries, err := repo.ListForOwner(ctx, owner)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "wallet_4", entries[0].Counterpart)
}
