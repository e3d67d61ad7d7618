package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brainbreak/brainbreak-api/internal/model"
)

// ErrCacheMiss is returned when no cached leaderboard is present.
var ErrCacheMiss = errors.New("leaderboard not cached")

const leaderboardKey = "leaderboard:top"

// LeaderboardCache is a Redis read-through cache for the leaderboard query.
// It holds the serialized top list under a short TTL and is invalidated when
// a stats update lands, so reads between games stay off Mongo.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a leaderboard cache and verifies the
// connection.
func NewLeaderboardCache(ctx context.Context, client *redis.Client, ttl time.Duration) (*LeaderboardCache, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	return &LeaderboardCache{client: client, ttl: ttl}, nil
}

// NewLeaderboardCacheWithClient creates a cache around an existing client
// without a connection check (for testing).
func NewLeaderboardCacheWithClient(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached leaderboard, or ErrCacheMiss.
func (c *LeaderboardCache) Get(ctx context.Context) ([]*model.Account, error) {
	data, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var accounts []*model.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}

// Set stores the leaderboard under the configured TTL.
func (c *LeaderboardCache) Set(ctx context.Context, accounts []*model.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, leaderboardKey, data, c.ttl).Err()
}

// Invalidate drops the cached leaderboard.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, leaderboardKey).Err()
}

// Close closes the underlying Redis connection.
func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}
