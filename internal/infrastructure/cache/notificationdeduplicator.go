package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// notificationKeyPrefix is the prefix for all notification dedup keys
	notificationKeyPrefix = "notify_dedup:"
	// DefaultDedupTTL applies when the configured TTL is not positive.
	DefaultDedupTTL = 30 * time.Minute
)

// NotificationDeduplicator suppresses repeats of the same group alert
// within a TTL window.
type NotificationDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNotificationDeduplicator(client *redis.Client, ttl time.Duration) *NotificationDeduplicator {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &NotificationDeduplicator{client: client, ttl: ttl}
}

// TryAcquire claims key atomically. It returns false when the same key was
// claimed within the TTL window.
func (d *NotificationDeduplicator) TryAcquire(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, notificationKeyPrefix+key, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire dedup key: %w", err)
	}
	return ok, nil
}
