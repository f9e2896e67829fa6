// Package cache provides the Redis-backed occupancy cache.  Calendar
// reads are the hottest path in the service, so occupancy responses
// are cached per unit; every reservation create or delete bumps the
// unit's version synchronously, which orphans all cached entries for
// that unit without scanning the keyspace.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OccupancyCache stores serialized occupancy responses in Redis.
// A nil client disables the cache entirely; every method becomes a
// no-op so callers never need to branch on availability.  The cache
// satisfies booking.Invalidator.
type OccupancyCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewOccupancyCache builds an OccupancyCache.  rdb may be nil when
// Redis is unreachable at startup; the service then serves every
// occupancy read from the database.
func NewOccupancyCache(rdb *redis.Client, ttl time.Duration) *OccupancyCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OccupancyCache{rdb: rdb, ttl: ttl, prefix: "occ"}
}

// versionKey holds a monotonically increasing counter per unit.
// Entries embed the counter value in their key, so bumping it makes
// every older entry unreachable; Redis evicts them by TTL.
func (c *OccupancyCache) versionKey(unitID uint64) string {
	return fmt.Sprintf("%s:ver:%d", c.prefix, unitID)
}

func (c *OccupancyCache) entryKey(unitID uint64, version int64, from string) string {
	return fmt.Sprintf("%s:%d:%d:%s", c.prefix, unitID, version, from)
}

func (c *OccupancyCache) version(ctx context.Context, unitID uint64) int64 {
	v, err := c.rdb.Get(ctx, c.versionKey(unitID)).Int64()
	if err != nil {
		return 0
	}
	return v
}

// Get returns a cached occupancy payload for (unit, from), or
// ok=false on miss or when caching is disabled.
func (c *OccupancyCache) Get(ctx context.Context, unitID uint64, from string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, c.entryKey(unitID, c.version(ctx, unitID), from)).Bytes()
	if err != nil {
		return nil, false
	}
	return bs, true
}

// Set stores an occupancy payload under the unit's current version.
// Failures are ignored; the cache is best-effort.
func (c *OccupancyCache) Set(ctx context.Context, unitID uint64, from string, payload []byte) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, c.entryKey(unitID, c.version(ctx, unitID), from), payload, c.ttl).Err()
}

// Invalidate bumps the unit's version so no cached entry written
// before the call can be served again.  The engine invokes this
// synchronously after every committed reservation write.
func (c *OccupancyCache) Invalidate(ctx context.Context, unitID uint64) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, c.versionKey(unitID)).Err(); err == nil {
		// Keep the counter alive well past the entry TTL so a counter
		// expiry cannot resurrect an old entry.
		_ = c.rdb.Expire(ctx, c.versionKey(unitID), 10*c.ttl).Err()
	}
}
