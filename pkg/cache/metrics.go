package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheapi_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// CacheMisses tracks cache misses, including reads that failed
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheapi_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// CacheWrittenBytes tracks serialized payload bytes sent to the store
	CacheWrittenBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheapi_cache_written_bytes_total",
			Help: "Total serialized bytes written to the cache store",
		},
	)

	// CacheErrors tracks swallowed store and decode errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheapi_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "remove", "exists", "decode", "encode"
	)
)
