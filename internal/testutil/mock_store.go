// Package testutil provides test doubles for the cache store and the
// product backing store.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/arpan-rai/Redis-Caching-API/pkg/cache"
)

// ErrStoreDown is the default error injected by MockStore.Fail.
var ErrStoreDown = errors.New("mock store unavailable")

// MockStore is an in-memory cache.Store with failure injection and call
// tracking. Writes are visible immediately.
type MockStore struct {
	mu      sync.RWMutex
	entries map[string]cache.Entry
	err     error
	delay   time.Duration

	// Tracking
	GetCount    int
	SetCount    int
	DeleteCount int
	LastTTL     time.Duration
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		entries: make(map[string]cache.Entry),
	}
}

// Fail makes every subsequent operation return err. A nil err selects
// ErrStoreDown.
func (m *MockStore) Fail(err error) {
	if err == nil {
		err = ErrStoreDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Recover clears an injected failure.
func (m *MockStore) Recover() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = nil
}

// SetDelay adds latency to every operation.
func (m *MockStore) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Put stores a raw value directly, bypassing tracking. Useful for seeding
// malformed payloads.
func (m *MockStore) Put(key, raw string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = cache.NewEntry(raw, ttl)
}

// Raw returns the stored value for key without expiry checks.
func (m *MockStore) Raw(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e.Data, ok
}

// ExpiresAt returns the absolute expiry of key.
func (m *MockStore) ExpiresAt(key string) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e.ExpiresAt, ok
}

// Len returns the number of stored entries, expired ones included.
func (m *MockStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Counts returns the get, set and delete call counts.
func (m *MockStore) Counts() (gets, sets, deletes int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.GetCount, m.SetCount, m.DeleteCount
}

// Reset clears entries, counters and injected failures.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]cache.Entry)
	m.err = nil
	m.delay = 0
	m.GetCount = 0
	m.SetCount = 0
	m.DeleteCount = 0
	m.LastTTL = 0
}

func (m *MockStore) wait(ctx context.Context) error {
	m.mu.RLock()
	d := m.delay
	m.mu.RUnlock()
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Get implements cache.Store.
func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCount++
	if m.err != nil {
		return "", m.err
	}

	e, ok := m.entries[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	if e.IsExpired() {
		delete(m.entries, key)
		return "", cache.ErrNotFound
	}
	return e.Data, nil
}

// Set implements cache.Store.
func (m *MockStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := m.wait(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCount++
	if m.err != nil {
		return m.err
	}
	m.LastTTL = ttl
	m.entries[key] = cache.NewEntry(value, ttl)
	return nil
}

// Delete implements cache.Store.
func (m *MockStore) Delete(ctx context.Context, key string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCount++
	if m.err != nil {
		return m.err
	}
	delete(m.entries, key)
	return nil
}

// Ping implements cache.Store.
func (m *MockStore) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Close implements cache.Store.
func (m *MockStore) Close() error {
	return nil
}
