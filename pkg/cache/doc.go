// Package cache provides a typed, best-effort cache gateway over a
// remote key-value store.
//
// The Gateway serializes values to JSON, applies a default expiration of
// 30 minutes when the caller gives none, and fails open: store errors are
// logged and reported to the caller as a miss (reads) or silently dropped
// (writes).
//
// # Basic Usage
//
//	// Create Redis client
//	opts, err := cache.ParseConnectionString("localhost:6379")
//	if err != nil {
//		return err
//	}
//	store := cache.NewRedisStore(redis.NewClient(opts), "RedisApi_")
//
//	// Create gateway
//	gw := cache.NewGateway(store, logger, 0)
//
//	// Store a value with the default TTL
//	gw.Set(ctx, cache.Key("product", 1), product, 0)
//
//	// Read it back
//	var p catalog.Product
//	if gw.Get(ctx, cache.Key("product", 1), &p) {
//		// hit
//	}
//
// # Distinguishing misses from failures
//
// Get and Exists collapse every failure into "absent". Lookup returns the
// underlying reason:
//
//	err := gw.Lookup(ctx, key, &p)
//	switch {
//	case errors.Is(err, cache.ErrCacheMiss):
//	case errors.Is(err, cache.ErrInvalidEntry):
//	case err != nil:
//		// store unavailable
//	}
//
// # Stores
//
// RedisStore talks to Redis through go-redis and namespaces every key with
// a prefix. MemoryStore keeps entries in process (otter) and is meant for
// local runs and tests without a Redis server.
//
// # Metrics
//
//   - cacheapi_cache_hits_total - Cache hits
//   - cacheapi_cache_misses_total - Cache misses, failed reads included
//   - cacheapi_cache_errors_total{operation} - Store and decode errors
//   - cacheapi_cache_written_bytes_total - Payload bytes written
package cache
