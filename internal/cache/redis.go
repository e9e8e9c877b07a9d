package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/metamingle/server/internal/config"
	"github.com/metamingle/server/internal/identity"
)

// matchTTL bounds cache staleness; the DB rows remain the durable copy.
const matchTTL = time.Hour

// ScoredCounterpart is one entry in a cached match list, already in
// presentation order.
type ScoredCounterpart struct {
	Counterpart string  `json:"counterpart"`
	Score       float64 `json:"score"`
}

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForMatches generates the Redis key for a user's generated match list.
func (c *RedisCache) KeyForMatches(owner identity.Principal) string {
	return fmt.Sprintf("matches:%s", owner)
}

// SetMatches stores the ordered match list for a user, refreshing the TTL.
// The list must already be in presentation order.
func (c *RedisCache) SetMatches(ctx context.Context, owner identity.Principal, list []ScoredCounterpart) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal match list: %w", err)
	}
	return c.Client.Set(ctx, c.KeyForMatches(owner), b, matchTTL).Err()
}

// GetMatches returns the cached match list and whether it was present.
func (c *RedisCache) GetMatches(ctx context.Context, owner identity.Principal) ([]ScoredCounterpart, bool, error) {
	val, err := c.Client.Get(ctx, c.KeyForMatches(owner)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil // cache miss
	} else if err != nil {
		return nil, false, err
	}

	var list []ScoredCounterpart
	if err := json.Unmarshal([]byte(val), &list); err != nil {
		// treat a corrupt entry as a miss, the DB copy is authoritative
		return nil, false, nil
	}

	// refresh TTL on access
	_ = c.Client.Expire(ctx, c.KeyForMatches(owner), matchTTL).Err()
	return list, true, nil
}

// InvalidateMatches drops a user's cached list, e.g. after a profile edit.
func (c *RedisCache) InvalidateMatches(ctx context.Context, owner identity.Principal) error {
	return c.Client.Del(ctx, c.KeyForMatches(owner)).Err()
}
