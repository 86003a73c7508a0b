package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cached payload could not be decoded
	ErrInvalidEntry = errors.New("invalid cache entry")
)

var jsonNull = []byte("null")

// Gateway adapts typed values to a string-oriented Store and applies the
// default expiration policy. It fails open: callers never see store errors
// from Get, Set, Remove or Exists.
type Gateway struct {
	store      Store
	defaultTTL time.Duration
	logger     zerolog.Logger
}

// NewGateway creates a gateway over store. A non-positive defaultTTL
// selects DefaultTTL.
func NewGateway(store Store, logger zerolog.Logger, defaultTTL time.Duration) *Gateway {
	if store == nil {
		panic("cache store cannot be nil")
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Gateway{
		store:      store,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// DefaultTTL returns the expiration applied when Set is called without one.
func (g *Gateway) DefaultTTL() time.Duration {
	return g.defaultTTL
}

// Lookup fetches key and decodes it into dest, which must be a pointer.
// It returns ErrCacheMiss when the key is absent, empty or holds JSON null,
// an error wrapping ErrInvalidEntry when the payload cannot be decoded,
// and a wrapped store error otherwise.
func (g *Gateway) Lookup(ctx context.Context, key string, dest any) error {
	raw, err := g.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			CacheMisses.Inc()
			return ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		CacheMisses.Inc()
		return fmt.Errorf("store get: %w", err)
	}

	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		CacheMisses.Inc()
		return ErrCacheMiss
	}

	if err := json.Unmarshal(data, dest); err != nil {
		CacheErrors.WithLabelValues("decode").Inc()
		CacheMisses.Inc()
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	CacheHits.Inc()
	return nil
}

// Get decodes the value stored under key into dest and reports whether it
// was found. Store failures and malformed payloads are logged and reported
// as absent.
func (g *Gateway) Get(ctx context.Context, key string, dest any) bool {
	err := g.Lookup(ctx, key, dest)
	switch {
	case err == nil:
		g.logger.Debug().Str("key", key).Msg("Cache hit")
		return true
	case errors.Is(err, ErrCacheMiss):
		g.logger.Debug().Str("key", key).Msg("Cache miss")
	default:
		g.logger.Error().Err(err).Str("key", key).Msg("Error getting cache key")
	}
	return false
}

// Set serializes value and stores it under key. A non-positive ttl selects
// the gateway's default TTL. Failures are logged and swallowed.
func (g *Gateway) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		CacheErrors.WithLabelValues("encode").Inc()
		g.logger.Error().Err(err).Str("key", key).Msg("Error serializing cache value")
		return
	}

	ttl = Expiration(ttl, g.defaultTTL)
	if err := g.store.Set(ctx, key, string(data), ttl); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		g.logger.Error().Err(err).Str("key", key).Msg("Error setting cache key")
		return
	}

	CacheWrittenBytes.Add(float64(len(data)))
	g.logger.Debug().Str("key", key).Dur("ttl", ttl).Int("bytes", len(data)).Msg("Cache set")
}

// Remove deletes key. Failures are logged and swallowed.
func (g *Gateway) Remove(ctx context.Context, key string) {
	if err := g.store.Delete(ctx, key); err != nil {
		CacheErrors.WithLabelValues("remove").Inc()
		g.logger.Error().Err(err).Str("key", key).Msg("Error removing cache key")
	}
}

// Exists reports whether a non-empty value is stored under key. Store
// failures are logged and reported as false.
func (g *Gateway) Exists(ctx context.Context, key string) bool {
	raw, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			CacheErrors.WithLabelValues("exists").Inc()
			g.logger.Error().Err(err).Str("key", key).Msg("Error checking cache key existence")
		}
		return false
	}
	return raw != ""
}

// Ping checks that the underlying store is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.store.Ping(ctx)
}
