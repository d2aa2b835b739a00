// render.go provides a Valkey-backed cache for sanitized post HTML.
// Running a post's Markdown through the pipeline is pure, so the result can
// be reused until the post changes; the key includes the post's last-update
// time so an edit naturally invalidates the old entry. Permission decisions
// are never cached here or anywhere else.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pressroom/internal/models"
)

const (
	// renderKeyPrefix is the Valkey key prefix for cached rendered content.
	renderKeyPrefix = "render:"

	// DefaultRenderTTL is how long rendered content stays cached.
	DefaultRenderTTL = 10 * time.Minute
)

// RenderCache stores sanitized post HTML in Valkey.
type RenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRenderCache creates a render cache backed by the given Valkey client.
func NewRenderCache(client *redis.Client, ttl time.Duration) *RenderCache {
	return &RenderCache{client: client, ttl: ttl}
}

// PostKey builds the cache key for a post's rendered content. The update
// timestamp is part of the key, so stale entries are simply never read
// again and expire on their own.
func PostKey(p *models.Post) string {
	stamp := p.CreatedAt
	if p.UpdatedAt != nil {
		stamp = *p.UpdatedAt
	}
	return fmt.Sprintf("%s%d:%d", renderKeyPrefix, p.ID, stamp.Unix())
}

// Get returns the cached HTML for key, and whether it was present.
// Cache failures are logged and reported as misses; rendering again is
// always a safe fallback. A nil cache is a valid always-miss cache.
func (c *RenderCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("render cache get failed", "error", err, "key", key)
		return "", false
	}
	return val, true
}

// Set stores rendered HTML under key. Failures are logged, not returned;
// a missed cache write costs one extra render.
func (c *RenderCache) Set(ctx context.Context, key, html string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, html, c.ttl).Err(); err != nil {
		slog.Warn("render cache set failed", "error", err, "key", key)
	}
}
