// Package cache holds the redis-backed read cache for public event surfaces.
// Every operation is best-effort: a redis error is treated as a miss and the
// caller falls through to postgres.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	publicListKey  = "events:public"
	publicSlugKey  = "events:public:slug:%s"
	defaultListTTL = 30 * time.Second
	defaultShowTTL = 5 * time.Minute
)

type EventCache struct {
	client  *redis.Client
	listTTL time.Duration
	showTTL time.Duration
}

func NewEventCache(client *redis.Client) *EventCache {
	return &EventCache{
		client:  client,
		listTTL: defaultListTTL,
		showTTL: defaultShowTTL,
	}
}

func (c *EventCache) GetPublicList(ctx context.Context) ([]models.Event, bool) {
	raw, err := c.client.Get(ctx, publicListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var events []models.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false
	}
	return events, true
}

func (c *EventCache) SetPublicList(ctx context.Context, events []models.Event) {
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	c.client.Set(ctx, publicListKey, raw, c.listTTL)
}

func (c *EventCache) GetBySlug(ctx context.Context, slug string) (*models.Event, bool) {
	raw, err := c.client.Get(ctx, fmt.Sprintf(publicSlugKey, slug)).Bytes()
	if err != nil {
		return nil, false
	}
	var event models.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, false
	}
	return &event, true
}

func (c *EventCache) SetBySlug(ctx context.Context, event *models.Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	c.client.Set(ctx, fmt.Sprintf(publicSlugKey, event.Slug), raw, c.showTTL)
}

// Invalidate drops the list key and the slug entry after any lifecycle
// transition that changes public visibility.
func (c *EventCache) Invalidate(ctx context.Context, slug string) {
	c.client.Del(ctx, publicListKey, fmt.Sprintf(publicSlugKey, slug))
}
