// AngelaMos | 2026
// denylist.go

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Denylist records revoked session IDs until the session would have
// expired anyway.
type Denylist interface {
	Deny(ctx context.Context, id string, until time.Time) error
	IsDenied(ctx context.Context, id string) (bool, error)
}

// ExpiringSet is the slice of core.Redis the Redis denylist needs.
type ExpiringSet interface {
	Key(parts ...string) string
	SetUntil(ctx context.Context, key string, until time.Time) error
	Has(ctx context.Context, key string) (bool, error)
}

type RedisDenylist struct {
	store ExpiringSet
}

func NewRedisDenylist(store ExpiringSet) *RedisDenylist {
	return &RedisDenylist{store: store}
}

func (d *RedisDenylist) Deny(ctx context.Context, id string, until time.Time) error {
	if err := d.store.SetUntil(ctx, d.store.Key("revoked", id), until); err != nil {
		return fmt.Errorf("deny session: %w", err)
	}
	return nil
}

func (d *RedisDenylist) IsDenied(ctx context.Context, id string) (bool, error) {
	denied, err := d.store.Has(ctx, d.store.Key("revoked", id))
	if err != nil {
		return false, fmt.Errorf("check denylist: %w", err)
	}
	return denied, nil
}

// MemoryDenylist is the single-process fallback when Redis is not
// configured. Entries are dropped lazily once expired.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (d *MemoryDenylist) Deny(_ context.Context, id string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, exp := range d.entries {
		if !now.Before(exp) {
			delete(d.entries, k)
		}
	}
	if now.Before(until) {
		d.entries[id] = until
	}
	return nil
}

func (d *MemoryDenylist) IsDenied(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	until, ok := d.entries[id]
	if !ok {
		return false, nil
	}
	if !d.now().Before(until) {
		delete(d.entries, id)
		return false, nil
	}
	return true, nil
}
