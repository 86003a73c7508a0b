package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/maypok86/otter/v2"
)

// maxEntryLifetime bounds per-entry expiry so otter's unix-nano deadline
// cannot overflow int64.
const maxEntryLifetime = 100 * 365 * 24 * time.Hour

// MemoryStore is an in-process Store backed by an otter W-TinyLFU cache.
// Each entry expires after its own TTL.
type MemoryStore struct {
	cache *otter.Cache[string, Entry]
}

// NewMemoryStore creates an in-memory store holding at most maxSize entries.
func NewMemoryStore(maxSize int) (*MemoryStore, error) {
	c, err := otter.New[string, Entry](&otter.Options[string, Entry]{
		MaximumSize:      maxSize,
		ExpiryCalculator: otter.ExpiryWritingFunc(entryLifetime),
	})
	if err != nil {
		return nil, fmt.Errorf("create memory store: %w", err)
	}
	return &MemoryStore{cache: c}, nil
}

func entryLifetime(e otter.Entry[string, Entry]) time.Duration {
	return min(e.Value.TTL(), maxEntryLifetime)
}

// Get returns the value for key if present and not expired.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	e, ok := m.cache.GetIfPresent(key)
	if !ok {
		return "", ErrNotFound
	}
	if e.IsExpired() {
		m.cache.Invalidate(key)
		return "", ErrNotFound
	}
	return e.Data, nil
}

// Set stores value for ttl.
func (m *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.cache.Set(key, NewEntry(value, ttl))
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.cache.Invalidate(key)
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Close drops every entry.
func (m *MemoryStore) Close() error {
	m.cache.InvalidateAll()
	return nil
}
