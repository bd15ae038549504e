// Package cache holds the Redis-backed profile cache. Caching is an
// optimization only: when no Redis client is available every method is
// a no-op and callers fall through to the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erenasiroglu/persona-backend/internal/service"
)

// DefaultProfileTTL bounds how stale a cached profile may get.
const DefaultProfileTTL = 5 * time.Minute

// UserCache stores public profiles keyed by user id. Entries are
// invalidated when a password reset rotates the credential so a
// just-reset account never serves stale data past the TTL.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewUserCache wraps the given client. A nil client yields a disabled
// cache whose methods all succeed without doing anything.
func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &UserCache{rdb: rdb, ttl: ttl}
}

func profileKey(id uint64) string { return fmt.Sprintf("profile:%d", id) }

// Get returns the cached profile and whether it was present. Redis
// errors are treated as a miss.
func (c *UserCache) Get(ctx context.Context, id uint64) (service.PublicUser, bool) {
	if c == nil || c.rdb == nil {
		return service.PublicUser{}, false
	}
	raw, err := c.rdb.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		return service.PublicUser{}, false
	}
	var u service.PublicUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return service.PublicUser{}, false
	}
	return u, true
}

// Set stores the profile for the configured TTL. Failures are ignored;
// the cache must never break a request.
func (c *UserCache) Set(ctx context.Context, u service.PublicUser) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, profileKey(u.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached profile for the user.
func (c *UserCache) Invalidate(ctx context.Context, id uint64) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, profileKey(id)).Err()
}
