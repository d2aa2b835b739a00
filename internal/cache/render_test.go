package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"pressroom/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for cache tests on DB 15.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "render:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func TestPostKeyChangesWithUpdate(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	post := &models.Post{ID: 12, CreatedAt: created}
	keyBefore := PostKey(post)

	post.UpdatedAt = &updated
	keyAfter := PostKey(post)

	if keyBefore == keyAfter {
		t.Error("editing a post must change its cache key")
	}
}

func TestRenderCacheRoundTrip(t *testing.T) {
	c := NewRenderCache(testValkeyClient(t), DefaultRenderTTL)
	ctx := context.Background()

	post := &models.Post{ID: 12, CreatedAt: time.Now()}
	key := PostKey(post)

	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("unexpected cache hit before Set")
	}

	c.Set(ctx, key, "<p>rendered</p>")

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if got != "<p>rendered</p>" {
		t.Errorf("Get = %q", got)
	}
}
