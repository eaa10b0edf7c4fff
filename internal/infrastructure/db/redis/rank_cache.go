package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RankCache caches the roleRef→rank map per company as a Redis hash.
// Key format: rolerank:<company_id>
//
// Entries carry no TTL: rank checks gate privilege escalation, so staleness
// is controlled by synchronous invalidation on hierarchy writes, never by
// time-based expiry.
type RankCache struct {
	client *redis.Client
}

// NewRankCache creates a RankCache wrapping the given Redis client.
func NewRankCache(client *redis.Client) *RankCache {
	return &RankCache{client: client}
}

// Get returns the cached rank map for a company. The second return value
// reports whether an entry existed.
func (c *RankCache) Get(ctx context.Context, companyID string) (map[string]int, bool, error) {
	fields, err := c.client.HGetAll(ctx, c.key(companyID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("rank cache get: %w", err)
	}
	if len(fields) == 0 {
		return nil, false, nil
	}

	ranks := make(map[string]int, len(fields))
	for ref, raw := range fields {
		rank, err := strconv.Atoi(raw)
		if err != nil {
			// A corrupt entry invalidates the whole map; the caller falls
			// back to the store.
			return nil, false, fmt.Errorf("rank cache entry %s: %w", ref, err)
		}
		ranks[ref] = rank
	}
	return ranks, true, nil
}

// Set stores the rank map for a company, replacing any previous entry.
func (c *RankCache) Set(ctx context.Context, companyID string, ranks map[string]int) error {
	key := c.key(companyID)
	if len(ranks) == 0 {
		return c.client.Del(ctx, key).Err()
	}

	fields := make(map[string]any, len(ranks))
	for ref, rank := range ranks {
		fields[ref] = strconv.Itoa(rank)
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rank cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached map for a company.
func (c *RankCache) Invalidate(ctx context.Context, companyID string) error {
	return c.client.Del(ctx, c.key(companyID)).Err()
}

func (c *RankCache) key(companyID string) string {
	return fmt.Sprintf("rolerank:%s", companyID)
}
