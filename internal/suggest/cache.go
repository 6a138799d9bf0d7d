package suggest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Suggester with a Redis read-through cache keyed by the
// lowercased title. Redis failures fall through to the wrapped suggester.
type Cache struct {
	next  Suggester
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(next Suggester, client *redis.Client, ttl time.Duration) *Cache {
	if next == nil {
		panic("suggest.NewCache: next suggester is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{next: next, redis: client, ttl: ttl}
}

func (c *Cache) SuggestCategories(ctx context.Context, title string) ([]string, error) {
	if out, ok := c.load(ctx, title); ok {
		return out, nil
	}
	out, err := c.next.SuggestCategories(ctx, title)
	if err != nil {
		return nil, err
	}
	c.store(ctx, title, out)
	return out, nil
}

func (c *Cache) load(ctx context.Context, title string) ([]string, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, cacheKey(title)).Bytes()
	if err != nil {
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		_ = c.redis.Del(ctx, cacheKey(title)).Err()
		return nil, false
	}
	return out, true
}

func (c *Cache) store(ctx context.Context, title string, out []string) {
	if c.redis == nil || c.ttl == 0 || out == nil {
		return
	}
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, cacheKey(title), data, c.ttl).Err()
}

func cacheKey(title string) string {
	return "suggest:" + strings.ToLower(strings.TrimSpace(title))
}
