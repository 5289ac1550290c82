package redis

import (
	"context"
	"fmt"
	"time"
)

// Deduplicator records processed webhook deliveries in Redis so that every
// receiver replica sees the same claims. It satisfies webhook.Deduplicator.
type Deduplicator struct {
	client *Client
	ttl    time.Duration
}

// NewDeduplicator creates a Deduplicator whose claims expire after ttl. A
// non-positive ttl means 24 hours.
func NewDeduplicator(client *Client, ttl time.Duration) *Deduplicator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Deduplicator{client: client, ttl: ttl}
}

// Claim sets the delivery key if absent and reports whether it did.
func (d *Deduplicator) Claim(ctx context.Context, id string) (bool, error) {
	ok, err := d.client.rdb.SetNX(ctx, d.client.Key("webhook", id), time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis claim %q: %w", id, err)
	}
	return ok, nil
}

// Release deletes the delivery key.
func (d *Deduplicator) Release(ctx context.Context, id string) error {
	if err := d.client.rdb.Del(ctx, d.client.Key("webhook", id)).Err(); err != nil {
		return fmt.Errorf("redis release %q: %w", id, err)
	}
	return nil
}
