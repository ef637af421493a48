// Package cache holds the redis-backed view cache for order listings and
// order detail pages. Admin mutations invalidate the whole view generation
// rather than tracking individual keys, so a batch status update costs one
// INCR regardless of how many orders it touched.
package cache

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	generationKey = "orderviews:gen"
	defaultTTL    = 5 * time.Minute
)

// OrderViews caches serialized order views. A nil redis client disables the
// cache entirely; every lookup is then a miss and every write a no-op.
type OrderViews struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewOrderViews creates a view cache over rdb. rdb may be nil.
func NewOrderViews(rdb *redis.Client) *OrderViews {
	return &OrderViews{rdb: rdb, ttl: defaultTTL}
}

// Get returns the cached payload for the view identified by parts, or false
// on a miss. Redis failures are treated as misses.
func (c *OrderViews) Get(ctx context.Context, parts ...string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	key, err := c.key(ctx, parts...)
	if err != nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a view payload under the current generation.
func (c *OrderViews) Set(ctx context.Context, payload []byte, parts ...string) {
	if c.rdb == nil {
		return
	}
	key, err := c.key(ctx, parts...)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("order view cache set failed: %v", err)
	}
}

// Invalidate drops every cached order view by advancing the generation.
// Stale keys expire by TTL.
func (c *OrderViews) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		log.Printf("order view cache invalidation failed: %v", err)
	}
}

func (c *OrderViews) key(ctx context.Context, parts ...string) (string, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("orderviews:%d:%s", gen, strings.Join(parts, ":")), nil
}
