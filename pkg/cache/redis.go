package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hasselx/heypage/pkg/view"
)

// PageCacheInterface caches assembled public pages keyed by normalized
// username. Entries are dropped on every accepted mutation by the owner, so
// a hit is never ahead of the store.
type PageCacheInterface interface {
	GetProfilePage(ctx context.Context, username string) (*view.ProfilePage, error)
	SetProfilePage(ctx context.Context, username string, page *view.ProfilePage, ttl time.Duration) error
	GetAboutPage(ctx context.Context, username string) (*view.AboutPage, error)
	SetAboutPage(ctx context.Context, username string, page *view.AboutPage, ttl time.Duration) error
	Invalidate(ctx context.Context, username string) error
}

type PageCache struct {
	client *redis.Client
}

func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client}
}

func profileKey(username string) string { return "page:profile:" + username }
func aboutKey(username string) string   { return "page:about:" + username }

func (c *PageCache) GetProfilePage(ctx context.Context, username string) (*view.ProfilePage, error) {
	val, err := c.client.Get(ctx, profileKey(username)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var page view.ProfilePage
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *PageCache) SetProfilePage(ctx context.Context, username string, page *view.ProfilePage, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(username), data, ttl).Err()
}

func (c *PageCache) GetAboutPage(ctx context.Context, username string) (*view.AboutPage, error) {
	val, err := c.client.Get(ctx, aboutKey(username)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var page view.AboutPage
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *PageCache) SetAboutPage(ctx context.Context, username string, page *view.AboutPage, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, aboutKey(username), data, ttl).Err()
}

func (c *PageCache) Invalidate(ctx context.Context, username string) error {
	return c.client.Del(ctx, profileKey(username), aboutKey(username)).Err()
}
