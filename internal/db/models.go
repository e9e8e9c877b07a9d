package db

import (
	"time"
)

// Connection request lifecycle. A request advances out of Pending exactly
// once and is immutable afterwards.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Date lifecycle. A date becomes Completed when its first review lands.
const (
	DateScheduled = "scheduled"
	DateCompleted = "completed"
)

// Counter names for sequential id allocation.
const (
	CounterDate = "date"
	CounterGift = "gift"
)

// Profile is a user's public record, keyed by the caller principal.
// Exactly one row per principal; rows are never deleted.
type Profile struct {
	Owner     string    `gorm:"primaryKey;size:128"`
	Name      string    `gorm:"size:64;not null"`
	Bio       string    `gorm:"size:256"`
	Age       uint32    `gorm:"not null"`
	Interests []string  `gorm:"serializer:json;type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ConnectionRequest represents the single request slot for an unordered
// principal pair.
//
// PK: PairKey (the two principals in canonical order, '|'-joined).
//   - Enforces "at most one non-rejected request per pair": a live row owns
//     the slot, and only a rejected row may be replaced by a fresh request.
//
// Fields:
//   - From: the principal who sent the request.
//   - To: the principal who must respond.
//   - Status: pending | accepted | rejected.
type ConnectionRequest struct {
	PairKey   string    `gorm:"primaryKey;size:260"`
	From      string    `gorm:"column:from_owner;size:128;not null;index:idx_request_to_status,priority:2"`
	To        string    `gorm:"column:to_owner;size:128;not null;index:idx_request_to_status,priority:1"`
	Status    string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Date is a scheduled virtual date. Ids come from the "date" counter, not
// from column auto-increment, so the sequence starts at 0 and stays
// dialect-independent.
type Date struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement:false"`
	Scheduler   string    `gorm:"size:128;not null;index"`
	Invitee     string    `gorm:"size:128;not null;index"`
	ScheduledAt int64     `gorm:"not null"`
	Location    string    `gorm:"size:128;not null"`
	Status      string    `gorm:"size:16;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Review of a completed date.
//
// Composite PK: (DateID, Reviewer)
//   - Ensures one review per reviewer per date.
type Review struct {
	DateID    uint64    `gorm:"primaryKey"`
	Reviewer  string    `gorm:"primaryKey;size:128"`
	Reviewee  string    `gorm:"size:128;not null"`
	Rating    uint32    `gorm:"not null"`
	Comment   string    `gorm:"size:256"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Gift is an immutable catalog entry. Ids come from the "gift" counter.
type Gift struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement:false"`
	Name        string    `gorm:"size:64;not null"`
	Description string    `gorm:"size:256"`
	Price       uint64    `gorm:"not null"`
	Creator     string    `gorm:"size:128;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// GiftTransfer is an append-only exchange record.
type GiftTransfer struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	GiftID    uint64    `gorm:"not null;index"`
	From      string    `gorm:"column:from_owner;size:128;not null;index"`
	To        string    `gorm:"column:to_owner;size:128;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// MatchEntry is one scored counterpart in a user's generated match set.
//
// Composite PK: (Owner, Counterpart).
// Rank caches the deterministic presentation order (descending score,
// ties by ascending counterpart) fixed at generation time.
type MatchEntry struct {
	Owner       string    `gorm:"primaryKey;size:128;index:idx_match_owner_rank,priority:1"`
	Counterpart string    `gorm:"primaryKey;size:128"`
	Score       float64   `gorm:"not null"`
	Rank        int       `gorm:"column:match_rank;not null;index:idx_match_owner_rank,priority:2"`
	GeneratedAt time.Time `gorm:"autoCreateTime"`
}

// Counter hands out gap-free sequential ids. Next is the id the next
// allocation returns; new counters start at 0.
type Counter struct {
	Name string `gorm:"primaryKey;size:32"`
	Next uint64 `gorm:"not null"`
}

// AllModels lists every persisted model for migration.
func AllModels() []any {
	return []any{
		&Profile{},
		&ConnectionRequest{},
		&Date{},
		&Review{},
		&Gift{},
		&GiftTransfer{},
		&MatchEntry{},
		&Counter{},
	}
}
