package webhook

import (
	"context"
	"sync"
	"time"
)

// Deduplicator records which deliveries were processed. The sender retries
// deliveries that did not get a 2xx answer, so the same request id can
// arrive more than once.
type Deduplicator interface {
	// Claim marks id as in progress and reports whether it was new.
	Claim(ctx context.Context, id string) (bool, error)
	// Release forgets id so that a retry is processed again.
	Release(ctx context.Context, id string) error
}

// MemoryDeduplicator is a single-process Deduplicator. Entries expire after
// ttl.
type MemoryDeduplicator struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryDeduplicator creates a MemoryDeduplicator. A non-positive ttl
// means 24 hours.
func NewMemoryDeduplicator(ttl time.Duration) *MemoryDeduplicator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryDeduplicator{ttl: ttl, now: time.Now, seen: make(map[string]time.Time)}
}

// Claim implements Deduplicator. Expired entries are swept on each call.
func (d *MemoryDeduplicator) Claim(_ context.Context, id string) (bool, error) {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, exp := range d.seen {
		if !now.Before(exp) {
			delete(d.seen, k)
		}
	}
	if _, ok := d.seen[id]; ok {
		return false, nil
	}
	d.seen[id] = now.Add(d.ttl)
	return true, nil
}

// Release implements Deduplicator.
func (d *MemoryDeduplicator) Release(_ context.Context, id string) error {
	d.mu.Lock()
	delete(d.seen, id)
	d.mu.Unlock()
	return nil
}
