package db

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/metamingle/server/internal/identity"
)

var seedInterestPool = [][]string{
	{"music", "travel"},
	{"music", "hiking", "food"},
	{"travel", "photography"},
	{"gaming", "movies"},
	{"food", "movies", "music"},
	{"hiking", "photography", "travel"},
	{"gaming", "music"},
	{"movies", "travel", "food"},
	{"photography", "gaming"},
	{"hiking", "food"},
}

// SeedDemoData resets the database and populates it with a deterministic
// demo dataset for local development.
//
// Behavior:
//  1. Clears every table.
//  2. Creates 10 profiles (wallet_1 .. wallet_10) with varied ages/interests.
//  3. Accepts a connection between each adjacent wallet pair.
//  4. Creates two catalog gifts.
func SeedDemoData(db *gorm.DB) error {
	tables := []string{
		"match_entries", "gift_transfers", "gifts", "reviews",
		"dates", "connection_requests", "profiles", "counters",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	// --- Profiles ---
	for i := 1; i <= 10; i++ {
		owner := fmt.Sprintf("wallet_%d", i)
		profile := Profile{
			Owner:     owner,
			Name:      fmt.Sprintf("User %d", i),
			Bio:       "Demo profile",
			Age:       uint32(21 + i),
			Interests: seedInterestPool[(i-1)%len(seedInterestPool)],
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
	}
	log.Println("Seeded 10 profiles.")

	// --- Accepted connections between adjacent pairs ---
	for i := 1; i < 10; i++ {
		from := identity.Principal(fmt.Sprintf("wallet_%d", i))
		to := identity.Principal(fmt.Sprintf("wallet_%d", i+1))
		req := ConnectionRequest{
			PairKey: identity.PairKey(from, to),
			From:    from.String(),
			To:      to.String(),
			Status:  RequestAccepted,
		}
		if err := db.Create(&req).Error; err != nil {
			return fmt.Errorf("failed to seed connection: %w", err)
		}
	}

	// --- Gifts ---
	gifts := []Gift{
		{ID: 0, Name: "Virtual Rose", Description: "A beautiful virtual rose", Price: 50, Creator: "wallet_1"},
		{ID: 1, Name: "Starlight Ticket", Description: "Admission to the virtual observatory", Price: 120, Creator: "wallet_2"},
	}
	if err := db.Create(&gifts).Error; err != nil {
		return fmt.Errorf("failed to seed gifts: %w", err)
	}
	if err := db.Create(&Counter{Name: CounterGift, Next: uint64(len(gifts))}).Error; err != nil {
		return fmt.Errorf("failed to seed gift counter: %w", err)
	}

	return nil
}
