// Package metrics serves the cache API's Prometheus metrics.
// Collectors are defined next to the code they measure (cache, catalog,
// server) and registered through promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the default gatherer in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - cacheapi_cache_hits_total (Counter): Gateway reads that decoded a value
//   - cacheapi_cache_misses_total (Counter): Gateway reads that found nothing usable
//   - cacheapi_cache_errors_total{operation} (Counter): Swallowed store, encode and decode errors
//   - cacheapi_cache_written_bytes_total (Counter): Serialized bytes written
//
// Catalog Metrics (pkg/catalog):
//   - cacheapi_catalog_fetch_duration_seconds{operation} (Histogram): Backing store latency
//
// HTTP Metrics (internal/server):
//   - cacheapi_http_requests_total{method, route, status} (Counter)
//   - cacheapi_http_request_duration_seconds{method, route} (Histogram)
//   - cacheapi_product_lookups_total{source} (Counter): "cache" or "database"
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(cacheapi_cache_hits_total[5m])) /
//   (sum(rate(cacheapi_cache_hits_total[5m])) + sum(rate(cacheapi_cache_misses_total[5m])))
//
//   # Swallowed store errors
//   sum by (operation) (rate(cacheapi_cache_errors_total[5m]))
//
//   # Products served from the backing store
//   rate(cacheapi_product_lookups_total{source="database"}[5m])
