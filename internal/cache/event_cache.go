package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-kit/society-events/internal/domain"
)

const upcomingEventsKey = "events:upcoming"

// EventCache is a best-effort redis cache for the public upcoming-events
// listing. Any redis failure degrades to a database read.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewEventCache builds the cache. A nil client or non-positive TTL
// disables it.
func NewEventCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *EventCache {
	return &EventCache{client: client, ttl: ttl, logger: logger}
}

// GetUpcoming returns the cached listing, or nil on miss.
func (c *EventCache) GetUpcoming(ctx context.Context) []domain.EventSummary {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil
	}
	raw, err := c.client.Get(ctx, upcomingEventsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("event cache read failed", zap.Error(err))
		}
		return nil
	}
	var listing []domain.EventSummary
	if err := json.Unmarshal(raw, &listing); err != nil {
		c.logger.Warn("event cache decode failed", zap.Error(err))
		return nil
	}
	return listing
}

// SetUpcoming stores the listing, society summaries included, for the
// configured TTL.
func (c *EventCache) SetUpcoming(ctx context.Context, listing []domain.EventSummary) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(listing)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, upcomingEventsKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("event cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing after any event mutation.
func (c *EventCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, upcomingEventsKey).Err(); err != nil {
		c.logger.Warn("event cache invalidation failed", zap.Error(err))
	}
}
